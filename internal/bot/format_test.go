package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/model"
)

func entry(name string, invites int) *model.Entry {
	return &model.Entry{
		UserID:      model.UserID(name),
		DisplayName: name,
		Invites:     invites,
		UpdatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSubmitUsage(t *testing.T) {
	_, missingErr := leaderboard.ParseCount("")
	_, numberErr := leaderboard.ParseCount("lots")
	_, negativeErr := leaderboard.ParseCount("-3")

	assert.Contains(t, submitUsage(missingErr), "provide the number")
	assert.Contains(t, submitUsage(numberErr), "valid number")
	assert.Contains(t, submitUsage(negativeErr), "must not be negative")
}

func TestSubmitReply(t *testing.T) {
	reply := submitReply(model.UpsertResult{IsNew: true}, 10)
	assert.Contains(t, reply, "Added you to the leaderboard")
	assert.Contains(t, reply, "*10*")

	reply = submitReply(model.UpsertResult{IsNew: false, PreviousInvites: 10}, 4)
	assert.Contains(t, reply, "from *10* to *4*")
}

func TestLeaderboardReplyEmpty(t *testing.T) {
	reply := leaderboardReply(nil, model.AggregateStats{})
	assert.Equal(t, emptyLeaderboardMessage, reply)
}

func TestLeaderboardReply(t *testing.T) {
	view := []*model.Entry{
		entry("anna", 10),
		entry("bob", 8),
		entry("carol", 5),
		entry("dave", 1),
	}
	stats := model.AggregateStats{Participants: 4, TotalInvites: 24}

	reply := leaderboardReply(view, stats)

	assert.Contains(t, reply, "🥇 @anna: *10* invites")
	assert.Contains(t, reply, "🥈 @bob: *8* invites")
	assert.Contains(t, reply, "🥉 @carol: *5* invites")
	assert.Contains(t, reply, "4. @dave: *1* invites")
	assert.Contains(t, reply, "Total participants: 4")
	assert.Contains(t, reply, "Total invites: 24")
}

func TestMyStatsReply(t *testing.T) {
	reply := myStatsReply(entry("anna", 10), 1)
	assert.Contains(t, reply, "Rank: 🥇")
	assert.Contains(t, reply, "Invites: *10*")
	assert.Contains(t, reply, "Last updated: 2025-06-01")

	reply = myStatsReply(entry("dave", 1), 4)
	assert.Contains(t, reply, "Rank: #4")
}
