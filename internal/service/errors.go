package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for an unknown email and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Sync request errors. Per-item problems never surface as errors; they are
// reported as conflicts in the response.
var (
	// ErrInvalidLimit is returned for a negative page size.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrTooManyItems is returned when a request carries more submissions
	// than the server accepts in one sync.
	ErrTooManyItems = errors.New("too many items")

	// ErrNoOwner is returned when a sync runs without an authenticated
	// account.
	ErrNoOwner = errors.New("no owner for sync was given")
)
