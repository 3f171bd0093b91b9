package session

import "errors"

// Session errors.
var (
	// ErrNotConfigured is returned when session functionality is used
	// but no session store was configured on the app.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session: not found")

	// ErrCorrupt is returned when a stored session payload cannot be decoded.
	ErrCorrupt = errors.New("session: corrupt payload")
)

// StoreError reports a failure of the backing storage.
// Callers treat it as fatal for the request.
type StoreError struct {
	Err error
	Op  string
}

func (e *StoreError) Error() string {
	return "session: store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
