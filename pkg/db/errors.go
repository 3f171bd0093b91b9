package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
	ErrReadScript               = errors.New("db schema: failed to read script")
	ErrExecScript               = errors.New("db schema: failed to execute script")
)

// ConnectionError reports that the database could not be reached.
// Individual query operations return it; the provider itself never fails eagerly.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "db: connection failed: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// classify wraps dial and pool-acquire failures into a ConnectionError.
// Query-level errors (syntax, constraint, no rows) pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var already *ConnectionError
	if errors.As(err, &already) {
		return err
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return &ConnectionError{Err: err}
	}
	if errors.Is(err, ErrFailedToOpenDBConnection) || errors.Is(err, ErrFailedToParseDBConfig) {
		return &ConnectionError{Err: err}
	}
	return err
}
