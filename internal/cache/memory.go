package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = time.Minute

// MemoryStore implements Store on an in-process go-cache instance.
// Entries are not shared between processes, so a visitor whose requests land on
// different processes can be counted once per process within a window.
type MemoryStore struct {
	// mu serializes the replace path when the injected clock runs ahead of the wall clock.
	mu    sync.Mutex
	items *gocache.Cache
	now   func() time.Time
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, mainly for tests that need to step over a window.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a MemoryStore. go-cache runs its own janitor for expired entries.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		items: gocache.New(gocache.NoExpiration, defaultCleanupInterval),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores value under key unless a live entry already exists.
func (s *MemoryStore) Add(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := memoryItem{value: value, expiresAt: now.Add(ttl)}
	if err := s.items.Add(key, item, ttl); err == nil {
		return true, nil
	}

	// go-cache still holds the key by wall-clock time; honour the injected clock.
	if raw, found := s.items.Get(key); found {
		if existing, ok := raw.(memoryItem); ok && now.Before(existing.expiresAt) {
			return false, nil
		}
	}
	s.items.Set(key, item, ttl)
	return true, nil
}

// Ping always succeeds for the in-process store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every entry. The go-cache janitor stops once the store is collected.
func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}

// Len returns the number of entries go-cache still holds.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}
