package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rooming-app/rooming/internal/kv"
)

const stateTTL = 10 * time.Minute

// StateStore holds the anti-CSRF state tokens issued when an OAuth flow
// starts. A state is single use: Consume reports whether it was present
// and removes it.
type StateStore interface {
	Save(ctx context.Context, state string) error
	Consume(ctx context.Context, state string) bool
}

// RedisStateStore keeps states in Redis with a TTL, so flows survive
// server restarts and expire on their own.
type RedisStateStore struct {
	client *kv.Redis
}

func NewRedisStateStore(client *kv.Redis) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) Save(ctx context.Context, state string) error {
	return s.client.SetEx(ctx, "oauth-state-"+state, []byte("1"), stateTTL)
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) bool {
	key := "oauth-state-" + state
	_, ok, err := s.client.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	_ = s.client.Delete(ctx, key)
	return true
}

// MemoryStateStore is the in-process fallback used when Redis is not
// configured, and in tests.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]time.Time)}
}

func (s *MemoryStateStore) Save(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(stateTTL)
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return time.Now().Before(expiry)
}
