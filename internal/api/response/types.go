package response

import (
	"time"

	"github.com/mkoskinen/inviteboard/internal/model"
)

// Entry represents a leaderboard entry in API responses
type Entry struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Invites     int       `json:"invites"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryFromModel converts a model.Entry to a response Entry
func EntryFromModel(e *model.Entry) Entry {
	return Entry{
		UserID:      string(e.UserID),
		DisplayName: e.DisplayName,
		Invites:     e.Invites,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// RankedEntry is an Entry with its 1-based leaderboard position
type RankedEntry struct {
	Rank int `json:"rank"`
	Entry
}

// Stats represents aggregate statistics
type Stats struct {
	Participants int `json:"total_participants"`
	TotalInvites int `json:"total_invites"`
}

// StatsFromModel converts model.AggregateStats
func StatsFromModel(s model.AggregateStats) Stats {
	return Stats{
		Participants: s.Participants,
		TotalInvites: s.TotalInvites,
	}
}

// Leaderboard is the ranked view plus aggregate stats
type Leaderboard struct {
	Entries []RankedEntry `json:"entries"`
	Stats   Stats         `json:"stats"`
}

// LeaderboardFromModel builds a Leaderboard from a ranked view
func LeaderboardFromModel(view []*model.Entry, stats model.AggregateStats) Leaderboard {
	entries := make([]RankedEntry, len(view))
	for i, e := range view {
		entries[i] = RankedEntry{Rank: i + 1, Entry: EntryFromModel(e)}
	}
	return Leaderboard{
		Entries: entries,
		Stats:   StatsFromModel(stats),
	}
}

// Submission is the response after recording a submission
type Submission struct {
	IsNew           bool `json:"is_new"`
	PreviousInvites int  `json:"previous_invites"`
	Invites         int  `json:"invites"`
	Rank            int  `json:"rank"`
}

// User is the response for a single participant lookup
type User struct {
	Rank int `json:"rank"`
	Entry
}
