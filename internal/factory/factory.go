package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mkoskinen/inviteboard/internal/dependencies/clock"
	"github.com/mkoskinen/inviteboard/internal/dependencies/delay"
	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/publish"
	"github.com/mkoskinen/inviteboard/internal/render"
	"github.com/mkoskinen/inviteboard/internal/storage"
	filestorage "github.com/mkoskinen/inviteboard/internal/storage/file"
	"github.com/mkoskinen/inviteboard/internal/storage/memory"
	redisstorage "github.com/mkoskinen/inviteboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock   clock.Clock
	Sleeper delay.Sleeper

	// Components
	Engine   *leaderboard.Engine
	Renderer *render.Renderer
	// Pipeline is nil when no site repository is configured
	Pipeline *publish.Pipeline
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("file", "memory" or
	// "redis"). If empty, defaults to "memory".
	StorageType string
	// DataFilePath is the leaderboard document path (required when
	// StorageType is "file")
	DataFilePath string
	// RedisConfig holds Redis connection settings (required when
	// StorageType is "redis")
	RedisConfig *redisstorage.Config

	// SiteRepoPath is the local site checkout to publish into.
	// If empty, no publish pipeline is created.
	SiteRepoPath string
	// GitBranch is the branch pushed to the site remote
	GitBranch string
	// HTMLFile and DataFile are the worktree-relative publish targets
	HTMLFile string
	DataFile string

	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	sleeper := delay.New()

	// Create storage based on type
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Store
	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeFile:
		if cfg.DataFilePath == "" {
			return nil, errors.New("DataFilePath required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataFilePath, clk, logger)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	engine := leaderboard.New(store, logger)
	renderer := render.New(clk)

	var pipeline *publish.Pipeline
	if cfg.SiteRepoPath != "" {
		branch := cfg.GitBranch
		if branch == "" {
			branch = "main"
		}
		repo := publish.NewGitRepo(cfg.SiteRepoPath, branch, logger)
		pipeline = publish.NewPipeline(repo, sleeper, logger, cfg.HTMLFile, cfg.DataFile)
	}

	return &App{
		Store:    store,
		Clock:    clk,
		Sleeper:  sleeper,
		Engine:   engine,
		Renderer: renderer,
		Pipeline: pipeline,
	}, nil
}
