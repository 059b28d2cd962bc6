package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a size-bounded in-process cache. The LRU evicts entries
// after maxTTL; shorter TTLs passed to Set are checked on read.
type MemoryStore struct {
	mu     sync.Mutex
	lru    *expirable.LRU[string, memoryEntry]
	maxTTL time.Duration
	now    func() time.Time
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore holding at most size entries.
func NewMemoryStore(size int, maxTTL time.Duration) (*MemoryStore, error) {
	if size <= 0 {
		return nil, errors.New("memory cache size must be positive")
	}
	if maxTTL <= 0 {
		return nil, errors.New("memory cache ttl must be positive")
	}
	return &MemoryStore{
		lru:    expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		maxTTL: maxTTL,
		now:    time.Now,
	}, nil
}

var errClosed = errors.New("store is closed")

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, unavailable("get", errClosed)
	}

	entry, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		s.lru.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements Store. A ttl above the store's maximum is capped.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailable("set", errClosed)
	}
	if ttl <= 0 || ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	buf := make([]byte, len(value))
	copy(buf, value)
	s.lru.Add(key, memoryEntry{value: buf, expiresAt: s.now().Add(ttl)})
	return nil
}

// Has implements Store.
func (s *MemoryStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Len returns the number of entries, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.lru.Purge()
	return nil
}
