package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local cache. Expired entries are dropped lazily on read.
type Memory[V any] struct {
	items      map[string]memoryEntry[V]
	defaultTTL time.Duration
	mu         sync.RWMutex
}

type memoryEntry[V any] struct {
	expiresAt time.Time
	value     V
}

// NewMemory creates an in-memory cache. A non-positive defaultTTL means one hour.
func NewMemory[V any](defaultTTL time.Duration) *Memory[V] {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Memory[V]{items: make(map[string]memoryEntry[V]), defaultTTL: defaultTTL}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || !time.Now().Before(e.expiresAt) {
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	m.mu.Lock()
	m.items[key] = memoryEntry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

var _ Cache[any] = (*Memory[any])(nil)
