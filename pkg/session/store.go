package session

import "context"

// Store defines the interface for session persistence.
type Store interface {
	// Load retrieves a session by id.
	// Returns ErrNotFound if the session doesn't exist or has expired.
	// Any other failure is a *StoreError.
	Load(ctx context.Context, id string) (*Session, error)

	// Save creates or replaces the session. Saving the same id twice never
	// produces a second record.
	Save(ctx context.Context, s *Session) error

	// Destroy removes a session by id. Destroying a missing id is not an error.
	Destroy(ctx context.Context, id string) error
}

// Pruner removes expired sessions in bulk.
type Pruner interface {
	// Prune deletes expired sessions and returns how many were removed.
	Prune(ctx context.Context) (int64, error)
}
