package expiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Handle locates an armed expiry task in the queue.
type Handle struct {
	TaskID string `json:"taskId"`
	Queue  string `json:"queue"`
}

// HandleStore remembers which task expires which reservation. Losing an entry
// only costs a slower disarm.
type HandleStore interface {
	Save(ctx context.Context, reservationID string, h Handle) error
	Lookup(ctx context.Context, reservationID string) (Handle, bool, error)
	Forget(ctx context.Context, reservationID string) error
}

// MemoryHandleStore keeps handles in process memory; fine for one instance.
type MemoryHandleStore struct {
	mu      sync.Mutex
	handles map[string]Handle
}

func NewMemoryHandleStore() *MemoryHandleStore {
	return &MemoryHandleStore{handles: make(map[string]Handle)}
}

func (s *MemoryHandleStore) Save(_ context.Context, reservationID string, h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[reservationID] = h
	return nil
}

func (s *MemoryHandleStore) Lookup(_ context.Context, reservationID string) (Handle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[reservationID]
	return h, ok, nil
}

func (s *MemoryHandleStore) Forget(_ context.Context, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, reservationID)
	return nil
}

// RedisHandleStore shares handles between instances. Keys expire shortly
// after the task itself would have fired.
type RedisHandleStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHandleStore(client *redis.Client, ttl time.Duration) *RedisHandleStore {
	return &RedisHandleStore{client: client, ttl: ttl}
}

func handleKey(reservationID string) string {
	return "expiry:handle:" + reservationID
}

func (s *RedisHandleStore) Save(ctx context.Context, reservationID string, h Handle) error {
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, handleKey(reservationID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save expiry handle: %w", err)
	}
	return nil
}

func (s *RedisHandleStore) Lookup(ctx context.Context, reservationID string) (Handle, bool, error) {
	raw, err := s.client.Get(ctx, handleKey(reservationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Handle{}, false, nil
	}
	if err != nil {
		return Handle{}, false, fmt.Errorf("failed to read expiry handle: %w", err)
	}
	var h Handle
	if err := json.Unmarshal(raw, &h); err != nil {
		return Handle{}, false, fmt.Errorf("corrupt expiry handle: %w", err)
	}
	return h, true, nil
}

func (s *RedisHandleStore) Forget(ctx context.Context, reservationID string) error {
	if err := s.client.Del(ctx, handleKey(reservationID)).Err(); err != nil {
		return fmt.Errorf("failed to forget expiry handle: %w", err)
	}
	return nil
}
