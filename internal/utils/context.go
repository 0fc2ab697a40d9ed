// Package utils holds small helpers shared by the transports and services:
// typed context keys, session JWTs, HMAC body signatures, JSON responses and
// identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so that keys from other
// packages never collide with ours.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated account id. Every sync and account
// operation below the auth middleware reads its owner from here.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the authenticated account id. ok is false
// when the value is missing or not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
