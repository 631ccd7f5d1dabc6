package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkoskinen/inviteboard/internal/dependencies/mocks"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/storage/memory"
	"github.com/mkoskinen/inviteboard/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	engine *Engine
	ctx    context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.engine = New(memory.New(s.clock), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *EngineSuite) TestParseCount() {
	invites, err := ParseCount("12")
	s.Require().NoError(err)
	s.Equal(12, invites)

	invites, err = ParseCount("  0 ")
	s.Require().NoError(err)
	s.Equal(0, invites)
}

func (s *EngineSuite) TestParseCountMissing() {
	_, err := ParseCount("")
	s.ErrorIs(err, model.ErrMissingCount)

	_, err = ParseCount("   ")
	s.ErrorIs(err, model.ErrMissingCount)
}

func (s *EngineSuite) TestParseCountNotANumber() {
	_, err := ParseCount("lots")
	s.ErrorIs(err, model.ErrNotANumber)

	_, err = ParseCount("1.5")
	s.ErrorIs(err, model.ErrNotANumber)
}

func (s *EngineSuite) TestParseCountNegative() {
	_, err := ParseCount("-3")
	s.ErrorIs(err, model.ErrNegativeCount)
}

func (s *EngineSuite) TestSubmitRejectsNegative() {
	_, err := s.engine.Submit(s.ctx, "user-1", "alice", -1)
	s.ErrorIs(err, model.ErrNegativeCount)

	// A rejected submission must leave the store untouched
	_, err = s.engine.Entry(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *EngineSuite) TestSubmitOverwrites() {
	result, err := s.engine.Submit(s.ctx, "user-1", "alice", 10)
	s.Require().NoError(err)
	s.True(result.IsNew)

	result, err = s.engine.Submit(s.ctx, "user-1", "alice", 4)
	s.Require().NoError(err)
	s.False(result.IsNew)
	s.Equal(10, result.PreviousInvites)

	entry, err := s.engine.Entry(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(4, entry.Invites)
}

func (s *EngineSuite) TestRankedViewStableOnTies() {
	_, _ = s.engine.Submit(s.ctx, "b", "bob", 10)
	_, _ = s.engine.Submit(s.ctx, "a", "anna", 10)
	_, _ = s.engine.Submit(s.ctx, "c", "carol", 5)

	view, err := s.engine.RankedView(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(view, 3)
	s.Equal(model.UserID("b"), view[0].UserID)
	s.Equal(model.UserID("a"), view[1].UserID)
	s.Equal(model.UserID("c"), view[2].UserID)

	// Re-running with unchanged data reproduces the same ordering
	again, err := s.engine.RankedView(s.ctx)
	s.Require().NoError(err)
	s.Equal(view, again)
}

func (s *EngineSuite) TestRankOf() {
	_, _ = s.engine.Submit(s.ctx, "a", "anna", 5)
	_, _ = s.engine.Submit(s.ctx, "b", "bob", 10)

	rank, err := s.engine.RankOf(s.ctx, "b")
	s.Require().NoError(err)
	s.Equal(1, rank)

	rank, err = s.engine.RankOf(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(2, rank)

	_, err = s.engine.RankOf(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *EngineSuite) TestStats() {
	stats, err := s.engine.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.AggregateStats{}, stats)

	_, _ = s.engine.Submit(s.ctx, "a", "anna", 5)
	_, _ = s.engine.Submit(s.ctx, "b", "bob", 10)
	_, _ = s.engine.Submit(s.ctx, "c", "carol", 0)

	stats, err = s.engine.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Participants)
	s.Equal(15, stats.TotalInvites)
}

func (s *EngineSuite) TestSnapshotReflectsSubmissions() {
	_, _ = s.engine.Submit(s.ctx, "a", "anna", 5)

	data, err := s.engine.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(data), `"user_id": "a"`)
	s.Contains(string(data), `"invites": 5`)
}
