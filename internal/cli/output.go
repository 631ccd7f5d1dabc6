package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SubmissionResult:
		o.printSubmissionResult(v)
	case LeaderboardResult:
		o.printLeaderboardResult(v)
	case StatsResult:
		o.printStatsResult(v)
	case UserResult:
		o.printUserResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Entry response type (matches API)
type Entry struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Invites     int       `json:"invites"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RankedEntry response type
type RankedEntry struct {
	Rank int `json:"rank"`
	Entry
}

// StatsResult response type
type StatsResult struct {
	Participants int `json:"total_participants"`
	TotalInvites int `json:"total_invites"`
}

// LeaderboardResult response type
type LeaderboardResult struct {
	Entries []RankedEntry `json:"entries"`
	Stats   StatsResult   `json:"stats"`
}

// SubmissionResult response type
type SubmissionResult struct {
	IsNew           bool `json:"is_new"`
	PreviousInvites int  `json:"previous_invites"`
	Invites         int  `json:"invites"`
	Rank            int  `json:"rank"`
}

// UserResult response type
type UserResult struct {
	Rank int `json:"rank"`
	Entry
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSubmissionResult(s SubmissionResult) {
	if s.IsNew {
		fmt.Printf("Added to the leaderboard with %d invites\n", s.Invites)
	} else {
		fmt.Printf("Updated invites from %d to %d\n", s.PreviousInvites, s.Invites)
	}
	fmt.Printf("Current rank: #%d\n", s.Rank)
}

func (o *Output) printLeaderboardResult(l LeaderboardResult) {
	if len(l.Entries) == 0 {
		fmt.Println("The leaderboard is empty")
		return
	}

	fmt.Println("Leaderboard:")
	for _, e := range l.Entries {
		fmt.Printf("  #%d %s - %d invites\n", e.Rank, e.DisplayName, e.Invites)
	}
	fmt.Println()
	o.printStatsResult(l.Stats)
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Participants: %d\n", s.Participants)
	fmt.Printf("Total invites: %d\n", s.TotalInvites)
}

func (o *Output) printUserResult(u UserResult) {
	fmt.Printf("User: %s (%s)\n", u.DisplayName, u.UserID)
	fmt.Printf("Rank: #%d\n", u.Rank)
	fmt.Printf("Invites: %d\n", u.Invites)
	fmt.Printf("Last updated: %s\n", u.UpdatedAt.Format("2006-01-02"))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
