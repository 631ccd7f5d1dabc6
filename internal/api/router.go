package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkoskinen/inviteboard/internal/api/handler"
	apimiddleware "github.com/mkoskinen/inviteboard/internal/api/middleware"
	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Engine *leaderboard.Engine
	// Publish, when set, is invoked after each accepted submission
	Publish handler.PublishFunc
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Engine, cfg.Publish)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/submissions", leaderboardHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", leaderboardHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats", leaderboardHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/users/{user_id}", leaderboardHandler.GetUser).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
