package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers connectivity failures and 5xx responses.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized is returned when a request still fails authorization
	// after the single refresh-and-retry pass.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation carries a server-side input validation failure (400).
	ErrValidation = errors.New("validation error")

	// ErrRateLimited is returned for 429 responses and is never retried
	// automatically.
	ErrRateLimited = errors.New("rate limited")
)

// StatusError is raised for unexpected statuses outside the mapped taxonomy,
// carrying the status code and raw response body for the caller.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, string(e.Body))
}
