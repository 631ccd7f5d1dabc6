package publish

import (
	"context"

	"github.com/mkoskinen/inviteboard/internal/leaderboard"
	"github.com/mkoskinen/inviteboard/internal/render"
)

// Refresh renders the current leaderboard state and hands the
// artifact plus data snapshot to the pipeline. It is the single
// composition point between the engine, the renderer and the
// publish collaborator.
func Refresh(ctx context.Context, engine *leaderboard.Engine, renderer *render.Renderer, pipeline *Pipeline, commitMessage string) (Result, error) {
	view, err := engine.RankedView(ctx)
	if err != nil {
		return Result{}, err
	}
	stats, err := engine.Stats(ctx)
	if err != nil {
		return Result{}, err
	}
	artifact, err := renderer.Page(view, stats)
	if err != nil {
		return Result{}, err
	}
	snapshot, err := engine.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}

	return pipeline.Publish(ctx, artifact, snapshot, commitMessage), nil
}
