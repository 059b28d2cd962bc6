package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/withoutfanfare/developer-test/internal/cache"
)

// MockCacheStore is an in-memory cache.Store whose behavior can be
// overridden per method. TTLs are recorded but never enforced.
type MockCacheStore struct {
	GetFn func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	HasFn func(ctx context.Context, key string) (bool, error)

	mu      sync.Mutex
	entries map[string][]byte
	// TTLs records the ttl of the last Set per key.
	TTLs     map[string]time.Duration
	GetCalls int
	SetCalls int
}

var _ cache.Store = (*MockCacheStore)(nil)

// NewMockCacheStore creates an empty MockCacheStore.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		entries: make(map[string][]byte),
		TTLs:    make(map[string]time.Duration),
	}
}

// Get implements cache.Store
func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set implements cache.Store
func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.SetCalls++
	m.mu.Unlock()

	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	m.Put(key, value)
	m.mu.Lock()
	m.TTLs[key] = ttl
	m.mu.Unlock()
	return nil
}

// Has implements cache.Store
func (m *MockCacheStore) Has(ctx context.Context, key string) (bool, error) {
	if m.HasFn != nil {
		return m.HasFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok, nil
}

// Close implements cache.Store
func (m *MockCacheStore) Close() error { return nil }

// Put seeds an entry directly.
func (m *MockCacheStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
}

// Keys returns the stored keys.
func (m *MockCacheStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}
