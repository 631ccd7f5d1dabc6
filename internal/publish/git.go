package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// commandTimeout bounds each git invocation so a hung remote cannot
// stall the process indefinitely.
const commandTimeout = 30 * time.Second

// ErrCommandTimeout marks a git command that exceeded its time bound.
// The pipeline counts it as one exhausted attempt.
var ErrCommandTimeout = errors.New("git command timed out")

// GitRepo runs the git binary inside a local checkout of the site
// repository. It implements the Target interface.
type GitRepo struct {
	path   string
	branch string
	logger *slog.Logger
}

// NewGitRepo creates a GitRepo for the checkout at path, pushing to
// origin/branch.
func NewGitRepo(path, branch string, logger *slog.Logger) *GitRepo {
	return &GitRepo{
		path:   path,
		branch: branch,
		logger: logger,
	}
}

// Ensure GitRepo implements the interface
var _ Target = (*GitRepo)(nil)

// WriteFile writes data to name inside the worktree
func (g *GitRepo) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(g.path, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Stage adds the given worktree-relative files to the index
func (g *GitRepo) Stage(ctx context.Context, files []string) error {
	args := append([]string{"add", "--"}, files...)
	_, err := g.run(ctx, args...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD
func (g *GitRepo) HasStagedChanges(ctx context.Context) (bool, error) {
	// diff --cached --quiet exits 1 when there are staged changes
	_, err := g.run(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

// Commit commits the staged changes with the given message
func (g *GitRepo) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch to origin
func (g *GitRepo) Push(ctx context.Context) error {
	_, err := g.run(ctx, "push", "-u", "origin", g.branch)
	return err
}

func (g *GitRepo) run(ctx context.Context, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "git", args...)
	cmd.Dir = g.path

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		g.logger.Warn("git command timed out", slog.String("command", args[0]))
		return output, fmt.Errorf("git %s: %w", args[0], ErrCommandTimeout)
	}
	if err != nil {
		return output, fmt.Errorf("git %s: %w: %s", args[0], err, output)
	}
	return output, nil
}
