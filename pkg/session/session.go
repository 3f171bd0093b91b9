package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is server-side state keyed by an opaque id carried in a signed cookie.
// A Session belongs to one request at a time and is not safe for concurrent use.
type Session struct {
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time
	Values       map[string]any
	ID           string
	flashes      []Flash

	dirty bool
	isNew bool
}

// New creates an unsaved session expiring at expiresAt.
func New(id string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// NewID returns a fresh random session identifier.
func NewID() string {
	return uuid.NewString()
}

// Set stores val under key.
func (s *Session) Set(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

// Get returns the raw value stored under key.
func (s *Session) Get(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// Delete removes key. Deleting a missing key leaves the session clean.
func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) ClearDirty()   { s.dirty = false }

// IsNew reports whether the session was created during this request and has not been persisted yet.
func (s *Session) IsNew() bool { return s.isNew }
func (s *Session) ClearNew()   { s.isNew = false }

// Touch records activity and slides the expiry to now+ttl.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.LastActiveAt = now
	s.ExpiresAt = now.Add(ttl)
	s.dirty = true
}

// Value returns the value under key when it holds a T.
// Values loaded from a store went through JSON, so numbers come back as float64.
func Value[T any](s *Session, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.Values[key].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ValueOr is Value with a fallback.
func ValueOr[T any](s *Session, key string, fallback T) T {
	if v, ok := Value[T](s, key); ok {
		return v
	}
	return fallback
}
