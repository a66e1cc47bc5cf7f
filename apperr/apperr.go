// Package apperr defines the error taxonomy shared by the core components.
// Handlers translate these into HTTP status codes; everything below the
// handlers wraps one of them with fmt.Errorf("...: %w", err).
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthRequired rejects a mutation from an unauthenticated or
	// blocked caller before any store write happens.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound means a referenced post or profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a uniqueness-constraint violation. Toggles absorb it
	// internally; it should never reach a handler.
	ErrConflict = errors.New("already exists")

	// ErrStoreUnavailable is a transient backend failure; callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalid is a malformed write: bad category, empty required field.
	ErrInvalid = errors.New("invalid input")
)

// HTTPStatus maps a taxonomy error to a response code. Unknown errors are
// treated as transient store failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}
