package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkoskinen/inviteboard/internal/api"
	"github.com/mkoskinen/inviteboard/internal/bot"
	"github.com/mkoskinen/inviteboard/internal/config"
	"github.com/mkoskinen/inviteboard/internal/factory"
	"github.com/mkoskinen/inviteboard/internal/publish"
	redisstorage "github.com/mkoskinen/inviteboard/internal/storage/redis"
)

// publishTimeout bounds one full background publish run (staging,
// commit and all push attempts including backoff).
const publishTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// The bot token is the only startup-fatal configuration
	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN environment variable not set; " +
			"get a token from @BotFather and export it before starting")
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		StorageType:  cfg.StorageType,
		DataFilePath: cfg.DataFile,
		SiteRepoPath: cfg.SiteRepoPath,
		GitBranch:    cfg.GitBranch,
		HTMLFile:     cfg.HTMLFile,
		DataFile:     cfg.DataFile,
		Logger:       logger,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if app.Pipeline == nil {
		logger.Warn("SITE_REPO_PATH not set, publishing disabled")
	}

	// Create the Telegram bot
	b, err := bot.New(cfg.TelegramToken, app.Engine, app.Renderer, app.Pipeline, logger)
	if err != nil {
		logger.Error("failed to create bot", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router; API submissions republish in the background
	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Engine:  app.Engine,
		Publish: backgroundPublisher(app, logger),
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.APIHost
	serverConfig.Port = cfg.APIPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 2)
	go func() {
		errCh <- b.Run(ctx)
	}()
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("runtime error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// backgroundPublisher republishes the static page after an API
// submission without blocking the request. Returns nil when
// publishing is disabled.
func backgroundPublisher(app *factory.App, logger *slog.Logger) func(commitMessage string) {
	if app.Pipeline == nil {
		return nil
	}

	return func(commitMessage string) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			res, err := publish.Refresh(ctx, app.Engine, app.Renderer, app.Pipeline, commitMessage)
			if err != nil {
				logger.Error("publish failed", slog.String("error", err.Error()))
				return
			}
			if res.Failed() {
				logger.Error("publish failed", slog.String("reason", res.Reason))
			}
		}()
	}
}
