package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration, loaded from the environment
type Config struct {
	// TelegramToken authenticates the bot with the Telegram API.
	// It is the only required setting.
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`

	// SiteRepoPath is the local checkout of the site repository.
	// When empty, publishing is disabled and the bot acts as a pure
	// leaderboard.
	SiteRepoPath string `env:"SITE_REPO_PATH"`
	DataFile     string `env:"DATA_FILE" envDefault:"leaderboard_data.json"`
	HTMLFile     string `env:"HTML_FILE" envDefault:"index.html"`
	GitBranch    string `env:"GIT_BRANCH" envDefault:"main"`

	// StorageType selects the storage backend ("file", "memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"file"`
	RedisURL    string `env:"REDIS_URL"`

	// API server settings
	APIHost string `env:"API_HOST"`
	APIPort int    `env:"API_PORT" envDefault:"8080"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto slog
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
