package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Suitable for development and tests.
type MemoryStore struct {
	items map[string]memoryItem
	mu    sync.RWMutex
}

type memoryItem struct {
	expiresAt time.Time
	data      []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem)}
}

// Load returns the live session with the given id.
func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	item, ok := m.items[id]
	m.mu.RUnlock()

	if !ok || !time.Now().Before(item.expiresAt) {
		return nil, ErrNotFound
	}
	sess, err := decode(id, item.data, item.expiresAt)
	if err != nil {
		return nil, storeErr("load", err)
	}
	return sess, nil
}

// Save stores an encoded copy so later mutations don't leak into the store.
func (m *MemoryStore) Save(_ context.Context, sess *Session) error {
	data, err := encode(sess)
	if err != nil {
		return storeErr("save", err)
	}
	m.mu.Lock()
	m.items[sess.ID] = memoryItem{data: data, expiresAt: sess.ExpiresAt}
	m.mu.Unlock()
	return nil
}

// Destroy removes the session.
func (m *MemoryStore) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

// Prune drops expired sessions.
func (m *MemoryStore) Prune(_ context.Context) (int64, error) {
	now := time.Now()
	var n int64

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.items {
		if !now.Before(item.expiresAt) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Pruner = (*MemoryStore)(nil)
)
