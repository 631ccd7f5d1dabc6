package storage

import (
	"context"

	"github.com/mkoskinen/inviteboard/internal/model"
)

// Store defines the interface for leaderboard persistence.
//
// Upsert is the single write path: implementations must treat it as a
// critical section (one writer at a time) and must never expose a
// partially-written collection to readers. All returns entries in
// arrival (creation) order, which is what gives ranked views their
// stable tie-break.
type Store interface {
	// Upsert creates or replaces the entry for userID. A new entry
	// reports IsNew with PreviousInvites of 0; an existing entry has
	// its count and display name overwritten and its updated
	// timestamp refreshed. The write is durable before Upsert returns.
	Upsert(ctx context.Context, userID model.UserID, displayName string, invites int) (model.UpsertResult, error)

	// Get returns the entry for userID, or model.ErrEntryNotFound.
	Get(ctx context.Context, userID model.UserID) (*model.Entry, error)

	// All returns every entry in arrival order.
	All(ctx context.Context) ([]*model.Entry, error)

	// Document returns the canonical serialized form of the full
	// entry collection, suitable for publishing alongside the
	// rendered page.
	Document(ctx context.Context) ([]byte, error)
}
