package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/storage"
)

// Engine merges submissions into the store and produces ranked views.
// It holds no state of its own; every view is recomputed from the
// store, so a view always reflects every submission that completed
// before it was requested.
type Engine struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates a new Engine
func New(store storage.Store, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// ParseCount normalizes raw submitted text into a non-negative invite
// count. Missing, non-numeric and negative input produce distinct
// validation errors.
func ParseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, model.ErrMissingCount
	}

	invites, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrNotANumber, raw)
	}
	if invites < 0 {
		return 0, model.ErrNegativeCount
	}

	return invites, nil
}

// Submit records a participant's current invite count. It is the only
// path that mutates entries.
func (e *Engine) Submit(ctx context.Context, userID model.UserID, displayName string, invites int) (model.UpsertResult, error) {
	if invites < 0 {
		return model.UpsertResult{}, model.ErrNegativeCount
	}

	result, err := e.store.Upsert(ctx, userID, displayName, invites)
	if err != nil {
		return model.UpsertResult{}, fmt.Errorf("recording submission: %w", err)
	}

	e.logger.Info("submission recorded",
		slog.String("user_id", string(userID)),
		slog.String("display_name", displayName),
		slog.Int("invites", invites),
		slog.Bool("is_new", result.IsNew),
	)

	return result, nil
}

// RankedView returns all entries sorted by invite count descending.
// The sort is stable over the store's arrival order, so participants
// with equal counts keep first-submission order and re-running with
// unchanged data reproduces an identical ordering.
func (e *Engine) RankedView(ctx context.Context) ([]*model.Entry, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Invites > entries[j].Invites
	})

	return entries, nil
}

// Entry returns the current entry for userID, or
// model.ErrEntryNotFound.
func (e *Engine) Entry(ctx context.Context, userID model.UserID) (*model.Entry, error) {
	return e.store.Get(ctx, userID)
}

// RankOf returns the 1-based position of userID in the ranked view,
// or model.ErrEntryNotFound.
func (e *Engine) RankOf(ctx context.Context, userID model.UserID) (int, error) {
	view, err := e.RankedView(ctx)
	if err != nil {
		return 0, err
	}

	for i, entry := range view {
		if entry.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, model.ErrEntryNotFound
}

// Stats computes aggregate statistics over the whole store.
func (e *Engine) Stats(ctx context.Context) (model.AggregateStats, error) {
	entries, err := e.store.All(ctx)
	if err != nil {
		return model.AggregateStats{}, fmt.Errorf("fetching entries: %w", err)
	}

	stats := model.AggregateStats{Participants: len(entries)}
	for _, entry := range entries {
		stats.TotalInvites += entry.Invites
	}
	return stats, nil
}

// Snapshot returns the canonical serialized form of the current entry
// collection, for publishing alongside the rendered page.
func (e *Engine) Snapshot(ctx context.Context) ([]byte, error) {
	return e.store.Document(ctx)
}
