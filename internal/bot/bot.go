// Package bot is the Telegram transport: it parses commands from chat
// updates, hands submissions to the leaderboard engine and triggers
// the publish pipeline after each accepted submission.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/publish"
	"github.com/mkoskinen/inviteboard/internal/render"
)

// pollTimeout is the long-poll timeout for Telegram updates, in seconds
const pollTimeout = 60

// Bot wires Telegram command handling to the leaderboard
type Bot struct {
	api      *tgbotapi.BotAPI
	engine   *leaderboard.Engine
	renderer *render.Renderer
	pipeline *publish.Pipeline // nil when publishing is disabled
	logger   *slog.Logger
}

// New creates a Bot authenticated with the given token
func New(token string, engine *leaderboard.Engine, renderer *render.Renderer, pipeline *publish.Pipeline, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}

	return &Bot{
		api:      api,
		engine:   engine,
		renderer: renderer,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Run polls for updates until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", slog.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches a single update. Handler errors are logged,
// never fatal.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	var err error
	switch msg.Command() {
	case "start":
		err = b.reply(msg, welcomeMessage)
	case "submit", "invites":
		err = b.handleSubmit(ctx, msg)
	case "leaderboard":
		err = b.handleLeaderboard(ctx, msg)
	case "mystats":
		err = b.handleMyStats(ctx, msg)
	default:
		return
	}

	if err != nil {
		b.logger.Error("handler failed",
			slog.String("command", msg.Command()),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bot) handleSubmit(ctx context.Context, msg *tgbotapi.Message) error {
	userID, displayName := identify(msg.From)

	invites, err := leaderboard.ParseCount(msg.CommandArguments())
	if err != nil {
		if model.IsValidation(err) {
			return b.reply(msg, submitUsage(err))
		}
		return err
	}

	result, err := b.engine.Submit(ctx, userID, displayName, invites)
	if err != nil {
		return err
	}

	// The submission is accepted at this point; publish outcome is
	// reported separately.
	if err := b.reply(msg, submitReply(result, invites)); err != nil {
		return err
	}

	if b.pipeline == nil {
		return nil
	}

	b.logger.Info("auto-publishing after submission", slog.String("display_name", displayName))
	commitMessage := fmt.Sprintf("Update leaderboard: @%s submitted %d invites", displayName, invites)
	res, err := publish.Refresh(ctx, b.engine, b.renderer, b.pipeline, commitMessage)
	if err != nil {
		return err
	}
	if res.Failed() {
		b.logger.Error("failed to publish", slog.String("reason", res.Reason))
		return b.reply(msg, publishFailedMessage)
	}
	return nil
}

func (b *Bot) handleLeaderboard(ctx context.Context, msg *tgbotapi.Message) error {
	view, err := b.engine.RankedView(ctx)
	if err != nil {
		return err
	}
	stats, err := b.engine.Stats(ctx)
	if err != nil {
		return err
	}
	return b.reply(msg, leaderboardReply(view, stats))
}

func (b *Bot) handleMyStats(ctx context.Context, msg *tgbotapi.Message) error {
	userID, _ := identify(msg.From)

	entry, err := b.engine.Entry(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			return b.reply(msg, noStatsMessage)
		}
		return err
	}

	rank, err := b.engine.RankOf(ctx, userID)
	if err != nil {
		return err
	}
	return b.reply(msg, myStatsReply(entry, rank))
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) error {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(out); err != nil {
		return fmt.Errorf("sending reply: %w", err)
	}
	return nil
}

// identify derives the opaque user id and last-seen display name from
// a Telegram user. Users without a username fall back to a synthetic
// one, matching how they would appear on the published page.
func identify(from *tgbotapi.User) (model.UserID, string) {
	id := model.UserID(strconv.FormatInt(from.ID, 10))
	name := from.UserName
	if name == "" {
		name = "user" + strconv.FormatInt(from.ID, 10)
	}
	return id, name
}
