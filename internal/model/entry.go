package model

import "time"

// UserID uniquely identifies a participant across the system.
// It is an opaque value taken from the chat transport (e.g. the
// numeric Telegram user id formatted as a string).
type UserID string

// Entry is one participant's current submitted invite count plus
// metadata. Exactly one entry exists per UserID; entries are updated
// in place and never deleted.
type Entry struct {
	UserID      UserID    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Invites     int       `json:"invites"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertResult describes the outcome of an entry upsert.
type UpsertResult struct {
	// IsNew is true when the submission created the entry.
	IsNew bool
	// PreviousInvites is the count the entry held before the upsert,
	// or 0 for a new entry.
	PreviousInvites int
}

// AggregateStats are derived totals over the whole store, computed
// fresh on every request.
type AggregateStats struct {
	Participants int `json:"total_participants"`
	TotalInvites int `json:"total_invites"`
}

// Document is the persisted envelope for the full entry collection.
// Entries are kept in arrival order; the serialized form is one
// human-diffable JSON document.
type Document struct {
	Entries []*Entry `json:"entries"`
}
