package memory

import (
	"context"
	"sync"

	"github.com/mkoskinen/inviteboard/internal/dependencies/clock"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	clock clock.Clock

	mu      sync.RWMutex
	entries map[model.UserID]*model.Entry
	order   []model.UserID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:   clk,
		entries: make(map[model.UserID]*model.Entry),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Upsert(ctx context.Context, userID model.UserID, displayName string, invites int) (model.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if entry, ok := s.entries[userID]; ok {
		previous := entry.Invites
		entry.DisplayName = displayName
		entry.Invites = invites
		entry.UpdatedAt = now
		return model.UpsertResult{PreviousInvites: previous}, nil
	}

	s.entries[userID] = &model.Entry{
		UserID:      userID,
		DisplayName: displayName,
		Invites:     invites,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.order = append(s.order, userID)

	return model.UpsertResult{IsNew: true}, nil
}

func (s *Storage) Get(ctx context.Context, userID model.UserID) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *Storage) All(ctx context.Context) ([]*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allLocked(), nil
}

func (s *Storage) Document(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.EncodeDocument(s.allLocked())
}

// allLocked copies the entries in arrival order. Callers hold at least
// a read lock.
func (s *Storage) allLocked() []*model.Entry {
	entries := make([]*model.Entry, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.entries[id]
		entries = append(entries, &copied)
	}
	return entries
}
