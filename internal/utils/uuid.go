package utils

import "github.com/google/uuid"

// NewUUID returns a time-ordered UUIDv7, falling back to a random v4 when
// the clock source fails.
func NewUUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
