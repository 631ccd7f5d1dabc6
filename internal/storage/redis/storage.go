package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkoskinen/inviteboard/internal/dependencies/clock"
	"github.com/mkoskinen/inviteboard/internal/model"
	"github.com/mkoskinen/inviteboard/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each entry is a JSON value; a LIST of user ids preserves arrival
// order. Upserts are serialized through a process-local mutex (the
// system assumes a single logical writer per process).
type Storage struct {
	client *redis.Client
	clock  clock.Clock

	mu sync.Mutex
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, clock: clk}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock) *Storage {
	return &Storage{client: client, clock: clk}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Upsert(ctx context.Context, userID model.UserID, displayName string, invites int) (model.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	existing, err := s.get(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrEntryNotFound) {
		return model.UpsertResult{}, err
	}

	if existing != nil {
		previous := existing.Invites
		existing.DisplayName = displayName
		existing.Invites = invites
		existing.UpdatedAt = now
		if err := s.save(ctx, existing); err != nil {
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

	data, err := json.Marshal(entry)
	if err != nil {
		return model.UpsertResult{}, err
	}

	// Pipeline keeps the entry and the arrival list in step
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entryKey(userID), data, 0)
	pipe.RPush(ctx, arrivalKey(), string(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return model.UpsertResult{}, err
	}

	return model.UpsertResult{IsNew: true}, nil
}

func (s *Storage) Get(ctx context.Context, userID model.UserID) (*model.Entry, error) {
	return s.get(ctx, userID)
}

func (s *Storage) All(ctx context.Context) ([]*model.Entry, error) {
	ids, err := s.client.LRange(ctx, arrivalKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.get(ctx, model.UserID(id))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Storage) Document(ctx context.Context) ([]byte, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return storage.EncodeDocument(entries)
}

func (s *Storage) get(ctx context.Context, userID model.UserID) (*model.Entry, error) {
	data, err := s.client.Get(ctx, entryKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEntryNotFound
		}
		return nil, err
	}

	var entry model.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Storage) save(ctx context.Context, entry *model.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, entryKey(entry.UserID), data, 0).Err()
}
