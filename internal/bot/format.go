package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/render"
)

const welcomeMessage = `🎉 *Welcome to EA Summit Helsinki Invite Leaderboard!* 🎉

Track your invites and compete with other organizers!

*Commands:*
/submit <number> - Submit your invite count
/leaderboard - View current standings
/mystats - Check your personal stats

Example: ` + "`/submit 10`" + `

Let's make this summit amazing! 🚀`

const emptyLeaderboardMessage = "📊 The leaderboard is empty!\n" +
	"Be the first to submit with `/submit <number>`"

const noStatsMessage = "You haven't submitted any invites yet!\n" +
	"Use `/submit <number>` to get started."

const publishFailedMessage = "⚠️ Submission saved but failed to publish to website. Check logs."

// submitUsage maps a validation error to the reply the submitter sees
func submitUsage(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingCount):
		return "Please provide the number of invites.\nExample: `/submit 10`"
	case errors.Is(err, model.ErrNegativeCount):
		return "Invite count must not be negative!"
	default:
		return "Please provide a valid number!"
	}
}

// submitReply confirms a recorded submission
func submitReply(result model.UpsertResult, invites int) string {
	if result.IsNew {
		return fmt.Sprintf("🎉 Great! Added you to the leaderboard with *%d* invites!", invites)
	}
	return fmt.Sprintf("✅ Updated your invites from *%d* to *%d*!", result.PreviousInvites, invites)
}

// leaderboardReply formats the current standings for chat
func leaderboardReply(view []*model.Entry, stats model.AggregateStats) string {
	if len(view) == 0 {
		return emptyLeaderboardMessage
	}

	lines := []string{"*🏆 EA Summit Helsinki Leaderboard 🏆*", ""}
	for i, entry := range view {
		rank := i + 1
		marker := render.Medal(rank)
		if marker == "" {
			marker = fmt.Sprintf("%d.", rank)
		}
		lines = append(lines, fmt.Sprintf("%s @%s: *%d* invites", marker, entry.DisplayName, entry.Invites))
	}

	lines = append(lines,
		"",
		"📊 *Stats:*",
		fmt.Sprintf("👥 Total participants: %d", stats.Participants),
		fmt.Sprintf("✉️ Total invites: %d", stats.TotalInvites),
	)

	return strings.Join(lines, "\n")
}

// myStatsReply formats a participant's personal standing
func myStatsReply(entry *model.Entry, rank int) string {
	rankDisplay := render.Medal(rank)
	if rankDisplay == "" {
		rankDisplay = fmt.Sprintf("#%d", rank)
	}

	return fmt.Sprintf(`*Your Stats* 📊

Rank: %s
Invites: *%d*
Last updated: %s

Keep up the great work! 🚀`,
		rankDisplay,
		entry.Invites,
		entry.UpdatedAt.Format("2006-01-02"),
	)
}
