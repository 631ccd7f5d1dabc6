package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mkoskinen/inviteboard/internal/dependencies/clock"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/storage"
)

// Storage is a file-backed implementation of the storage interface.
// The full entry collection is held in memory and rewritten to a
// single JSON document on every upsert: the write goes to a temporary
// file that is fsynced and renamed over the document, so readers of
// the file never observe a partially-written collection.
type Storage struct {
	path   string
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.RWMutex
	entries []*model.Entry
	index   map[model.UserID]int
}

// New creates a file storage instance backed by the document at path.
// A missing document starts an empty store. A document that exists
// but cannot be parsed also starts an empty store: the condition is
// logged and the unreadable file is left in place until the next
// successful write replaces it.
func New(path string, clk clock.Clock, logger *slog.Logger) (*Storage, error) {
	s := &Storage{
		path:   path,
		clock:  clk,
		logger: logger,
		index:  make(map[model.UserID]int),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading leaderboard document: %w", err)
	}

	doc, err := storage.DecodeDocument(data)
	if err != nil {
		s.logger.Warn("leaderboard document is unreadable, starting empty",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return nil
	}

	s.entries = doc.Entries
	for i, entry := range s.entries {
		s.index[entry.UserID] = i
	}
	return nil
}

func (s *Storage) Upsert(ctx context.Context, userID model.UserID, displayName string, invites int) (model.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if i, ok := s.index[userID]; ok {
		entry := s.entries[i]
		previous := entry.Invites
		updated := *entry
		updated.DisplayName = displayName
		updated.Invites = invites
		updated.UpdatedAt = now

		// Persist before mutating in-memory state, so a failed write
		// leaves readers seeing the old collection.
		s.entries[i] = &updated
		if err := s.persistLocked(); err != nil {
			s.entries[i] = entry
			return model.UpsertResult{}, err
		}
		return model.UpsertResult{PreviousInvites: previous}, nil
	}

	entry := &model.Entry{
		UserID:      userID,
		DisplayName: displayName,
		Invites:     invites,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.entries = append(s.entries, entry)
	if err := s.persistLocked(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return model.UpsertResult{}, err
	}
	s.index[userID] = len(s.entries) - 1

	return model.UpsertResult{IsNew: true}, nil
}

func (s *Storage) Get(ctx context.Context, userID model.UserID) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[userID]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	copied := *s.entries[i]
	return &copied, nil
}

func (s *Storage) All(ctx context.Context) ([]*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}

func (s *Storage) Document(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.EncodeDocument(s.entries)
}

// persistLocked rewrites the full document. Callers hold the write
// lock.
func (s *Storage) persistLocked() error {
	data, err := storage.EncodeDocument(s.entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing leaderboard document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("flushing leaderboard document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing leaderboard document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing leaderboard document: %w", err)
	}
	return nil
}
