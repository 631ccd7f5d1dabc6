package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkoskinen/inviteboard/internal/api/apierr"
	"github.com/mkoskinen/inviteboard/internal/api/request"
	"github.com/mkoskinen/inviteboard/internal/api/response"
	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/model"
)

// PublishFunc is invoked after an accepted submission to republish the
// static page. It runs outside the request cycle; its outcome is
// logged, not returned to the HTTP caller.
type PublishFunc func(commitMessage string)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	engine  *leaderboard.Engine
	publish PublishFunc // nil when publishing is disabled
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(engine *leaderboard.Engine, publish PublishFunc) *LeaderboardHandler {
	return &LeaderboardHandler{
		engine:  engine,
		publish: publish,
	}
}

// Submit handles POST /api/v1/submissions
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("user_id is required"))
		return
	}
	if req.DisplayName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("display_name is required"))
		return
	}

	invites, err := leaderboard.ParseCount(req.Invites)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.engine.Submit(r.Context(), model.UserID(req.UserID), req.DisplayName, invites)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	rank, err := h.engine.RankOf(r.Context(), model.UserID(req.UserID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if h.publish != nil {
		h.publish("Update leaderboard: @" + req.DisplayName + " submitted " + req.Invites + " invites")
	}

	status := http.StatusOK
	if result.IsNew {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.Submission{
		IsNew:           result.IsNew,
		PreviousInvites: result.PreviousInvites,
		Invites:         invites,
		Rank:            rank,
	})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.engine.RankedView(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	stats, err := h.engine.Stats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(view, stats))
}

// Stats handles GET /api/v1/stats
func (h *LeaderboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.Stats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(stats))
}

// GetUser handles GET /api/v1/users/{user_id}
func (h *LeaderboardHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	entry, err := h.engine.Entry(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	rank, err := h.engine.RankOf(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.User{
		Rank:  rank,
		Entry: response.EntryFromModel(entry),
	})
}
