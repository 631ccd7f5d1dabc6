// Package render turns a ranked view into the static leaderboard
// page. html/template's contextual autoescaping guarantees that
// participant-supplied text can never inject markup into the
// artifact.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/mkoskinen/inviteboard/internal/dependencies/clock"
	"github.com/mkoskinen/inviteboard/internal/model"
)

//go:embed page.html.tmpl
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// medals marks the top three positions on the page and in chat replies
var medals = []string{"🥇", "🥈", "🥉"}

// Medal returns the marker for a 1-based rank, or "" beyond the top
// three.
func Medal(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return ""
}

// row is one rendered leaderboard position
type row struct {
	Rank        int
	Medal       string
	RankClass   string
	DisplayName string
	Invites     int
}

// pageData is the template input
type pageData struct {
	Rows        []row
	Stats       model.AggregateStats
	LastUpdated string
}

// Renderer produces the published HTML artifact
type Renderer struct {
	clock clock.Clock
}

// New creates a new Renderer
func New(clk clock.Clock) *Renderer {
	return &Renderer{clock: clk}
}

// Page renders the ranked view and stats into a self-contained HTML
// page. Output is deterministic for identical inputs apart from the
// embedded last-updated timestamp.
func (r *Renderer) Page(view []*model.Entry, stats model.AggregateStats) (string, error) {
	data := pageData{
		Stats:       stats,
		LastUpdated: r.clock.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
	}

	for i, entry := range view {
		rank := i + 1
		rankClass := ""
		if rank <= 3 {
			rankClass = fmt.Sprintf("rank-%d", rank)
		}
		data.Rows = append(data.Rows, row{
			Rank:        rank,
			Medal:       Medal(rank),
			RankClass:   rankClass,
			DisplayName: entry.DisplayName,
			Invites:     entry.Invites,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering leaderboard page: %w", err)
	}
	return buf.String(), nil
}
