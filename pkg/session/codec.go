package session

import (
	"encoding/json"
	"errors"
	"time"
)

// record is the persisted JSON shape of a session.
type record struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	Values       map[string]any `json:"values,omitempty"`
	Flash        []Flash        `json:"flash,omitempty"`
}

// encode serializes the session payload. ID and expiry live in their own columns.
func encode(s *Session) ([]byte, error) {
	return json.Marshal(record{
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt,
		Values:       s.Values,
		Flash:        s.flashes,
	})
}

// decode rebuilds a stored session. The result is neither new nor dirty.
func decode(id string, data []byte, expiresAt time.Time) (*Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	if rec.Values == nil {
		rec.Values = make(map[string]any)
	}
	return &Session{
		ID:           id,
		Values:       rec.Values,
		flashes:      rec.Flash,
		CreatedAt:    rec.CreatedAt,
		LastActiveAt: rec.LastActiveAt,
		ExpiresAt:    expiresAt,
	}, nil
}
