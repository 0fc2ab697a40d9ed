package adapter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrBusy                = errors.New("server busy")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyBaseURL         = errors.New("empty base url")
	ErrIntegrityCheckFailed = errors.New("response integrity check failed")
	ErrMissingSessionToken  = errors.New("server returned no session token")
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	StatusCode int
	Messages   []string

	// RetryAfter is the server's back-off hint, set for 503 responses.
	RetryAfter time.Duration

	kind error
}

func (e *StatusError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.kind)
	}
	return fmt.Sprintf("http %d: %s: %s", e.StatusCode, e.kind, strings.Join(e.Messages, "; "))
}

func (e *StatusError) Unwrap() error {
	return e.kind
}
