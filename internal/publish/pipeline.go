// Package publish stages the rendered leaderboard artifact together
// with its data snapshot and pushes both to the site repository.
// Publishing is strictly downstream of the durable store write: a
// failed publish is reported to the caller but never rolls back an
// accepted submission.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoskinen/inviteboard/internal/dependencies/delay"
)

const (
	// pushAttempts is the total number of push attempts (1 initial + 3 retries)
	pushAttempts = 4
	// baseBackoff is the delay before the first retry; it doubles per
	// attempt (2s, 4s, 8s)
	baseBackoff = 2 * time.Second
)

// Target is the publish collaborator: a worktree that can stage files
// and push them to a remote.
type Target interface {
	WriteFile(name string, data []byte) error
	Stage(ctx context.Context, files []string) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
}

// Status is the overall outcome of a publish run
type Status string

const (
	// StatusPublished means the artifact was committed and pushed
	StatusPublished Status = "published"
	// StatusNoop means staged content matched the last published
	// state; the remote was never contacted
	StatusNoop Status = "no-op"
	// StatusFailed means staging, committing, or every push attempt
	// failed
	StatusFailed Status = "failed"
)

// Result describes the outcome of a publish run
type Result struct {
	Status Status
	Reason string
}

// Failed reports whether the run failed
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Pipeline publishes the rendered artifact and data snapshot
type Pipeline struct {
	target   Target
	sleeper  delay.Sleeper
	logger   *slog.Logger
	htmlFile string
	dataFile string
}

// NewPipeline creates a Pipeline writing the artifact to htmlFile and
// the data snapshot to dataFile inside the target worktree.
func NewPipeline(target Target, sleeper delay.Sleeper, logger *slog.Logger, htmlFile, dataFile string) *Pipeline {
	return &Pipeline{
		target:   target,
		sleeper:  sleeper,
		logger:   logger,
		htmlFile: htmlFile,
		dataFile: dataFile,
	}
}

// Publish stages artifact and snapshot, and commits and pushes them
// if they differ from the last published state. The push is retried
// with exponential backoff; the backoff sleep is the only blocking
// wait and aborts when ctx is cancelled.
func (p *Pipeline) Publish(ctx context.Context, artifact string, snapshot []byte, commitMessage string) Result {
	if err := p.target.WriteFile(p.htmlFile, []byte(artifact)); err != nil {
		return Result{StatusFailed, err.Error()}
	}
	if err := p.target.WriteFile(p.dataFile, snapshot); err != nil {
		return Result{StatusFailed, err.Error()}
	}

	if err := p.target.Stage(ctx, []string{p.htmlFile, p.dataFile}); err != nil {
		return Result{StatusFailed, fmt.Sprintf("staging files: %v", err)}
	}

	changed, err := p.target.HasStagedChanges(ctx)
	if err != nil {
		return Result{StatusFailed, fmt.Sprintf("checking staged changes: %v", err)}
	}
	if !changed {
		p.logger.Info("nothing to publish")
		return Result{Status: StatusNoop}
	}

	if err := p.target.Commit(ctx, commitMessage); err != nil {
		return Result{StatusFailed, fmt.Sprintf("committing: %v", err)}
	}

	backoff := baseBackoff
	var lastErr error
	for attempt := 1; attempt <= pushAttempts; attempt++ {
		err := p.target.Push(ctx)
		if err == nil {
			p.logger.Info("leaderboard published", slog.Int("attempt", attempt))
			return Result{Status: StatusPublished}
		}
		lastErr = err

		if attempt < pushAttempts {
			p.logger.Warn("push failed, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
				slog.String("error", lastErr.Error()),
			)
			if err := p.sleeper.Sleep(ctx, backoff); err != nil {
				return Result{StatusFailed, fmt.Sprintf("publish cancelled: %v", err)}
			}
			backoff *= 2
		}
	}

	return Result{StatusFailed, fmt.Sprintf("push failed after %d attempts: %v", pushAttempts, lastErr)}
}
