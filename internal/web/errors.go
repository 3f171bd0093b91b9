package web

import (
	"errors"
	"fmt"
	"net/http"
)

// Fixed user-facing messages. Only not-found errors reveal their own message.
const (
	NotFoundMessage  = "Unfortunately, we don't have that page in stock."
	GenericMessage   = "Oh no! There was a crash. Maybe try a different route?"
	ServerErrorTitle = "Server Error"
)

// HTTPError carries a status code and a user-facing message.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// ErrBadRequest reports malformed client input.
func ErrBadRequest(message string, err error) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// ErrPayloadTooLarge reports a request body over the configured limit.
func ErrPayloadTooLarge(err error) *HTTPError {
	return &HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "request entity too large", Err: err}
}

// ErrNotFound reports a missing page or resource.
func ErrNotFound(message string) *HTTPError {
	if message == "" {
		message = NotFoundMessage
	}
	return &HTTPError{Code: http.StatusNotFound, Message: message}
}

// ErrUnauthorized reports a request that needs a logged-in account.
func ErrUnauthorized(message string) *HTTPError {
	return &HTTPError{Code: http.StatusUnauthorized, Message: message}
}

// AsHTTPError extracts an HTTPError anywhere in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}

// statusCoder is implemented by errors that map to an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the status carried by err, or 500.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// PanicError wraps a value recovered from a panicking stage or handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
