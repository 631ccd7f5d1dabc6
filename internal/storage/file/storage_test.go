package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkoskinen/inviteboard/internal/dependencies/mocks"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	path    string
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "leaderboard_data.json")
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	storage, err := New(s.path, s.clock, testutil.NopLogger())
	s.Require().NoError(err)
	s.storage = storage
}

// reopen simulates a process restart against the same document
func (s *StorageSuite) reopen() *Storage {
	storage, err := New(s.path, s.clock, testutil.NopLogger())
	s.Require().NoError(err)
	return storage
}

func (s *StorageSuite) TestUpsertIsDurable() {
	result, err := s.storage.Upsert(s.ctx, "user-1", "alice", 10)
	s.Require().NoError(err)
	s.True(result.IsNew)

	reopened := s.reopen()
	entry, err := reopened.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("alice", entry.DisplayName)
	s.Equal(10, entry.Invites)
}

func (s *StorageSuite) TestUpsertReportsPreviousCount() {
	_, err := s.storage.Upsert(s.ctx, "user-1", "alice", 10)
	s.Require().NoError(err)

	result, err := s.storage.Upsert(s.ctx, "user-1", "alice", 3)
	s.Require().NoError(err)
	s.False(result.IsNew)
	s.Equal(10, result.PreviousInvites)
}

func (s *StorageSuite) TestRoundTripPreservesEntries() {
	_, _ = s.storage.Upsert(s.ctx, "b", "bob", 10)
	s.clock.Advance(time.Minute)
	_, _ = s.storage.Upsert(s.ctx, "a", "anna", 10)
	s.clock.Advance(time.Minute)
	_, _ = s.storage.Upsert(s.ctx, "c", "carol", 5)

	original, err := s.storage.All(s.ctx)
	s.Require().NoError(err)

	reloaded, err := s.reopen().All(s.ctx)
	s.Require().NoError(err)

	s.Equal(original, reloaded)
}

func (s *StorageSuite) TestArrivalOrderSurvivesReload() {
	_, _ = s.storage.Upsert(s.ctx, "b", "bob", 10)
	_, _ = s.storage.Upsert(s.ctx, "a", "anna", 10)

	entries, err := s.reopen().All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.UserID("b"), entries[0].UserID)
	s.Equal(model.UserID("a"), entries[1].UserID)
}

func (s *StorageSuite) TestDocumentEndsWithNewline() {
	_, _ = s.storage.Upsert(s.ctx, "a", "anna", 1)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.True(strings.HasSuffix(string(data), "}\n"))
}

func (s *StorageSuite) TestCorruptDocumentStartsEmpty() {
	_, _ = s.storage.Upsert(s.ctx, "a", "anna", 1)

	s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o644))

	reopened := s.reopen()
	entries, err := reopened.All(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)

	// The store stays usable after recovery
	result, err := reopened.Upsert(s.ctx, "b", "bob", 2)
	s.Require().NoError(err)
	s.True(result.IsNew)
}

func (s *StorageSuite) TestMissingDocumentStartsEmpty() {
	entries, err := s.storage.All(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestConcurrentUpsertsAllRecorded() {
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			id := model.UserID(string(rune('a' + n)))
			_, err := s.storage.Upsert(s.ctx, id, "user", n)
			s.NoError(err)
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	entries, err := s.storage.All(s.ctx)
	s.Require().NoError(err)
	s.Len(entries, 4)
}
