// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the notes sync API.
//
// [SyncClient] hides the transport from callers. The package ships an
// HTTP/REST implementation built on resty ([NewHTTPSyncClient]). Non-2xx
// responses are mapped to the sentinel errors in errors.go, so callers can
// use [errors.Is] regardless of the transport (e.g. [ErrBusy] for 503,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

// SyncClient talks to a notes sync server on behalf of one device.
type SyncClient interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. Register, SignIn and ChangePassword call it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account and keeps the returned session token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Params fetches the key-derivation parameters stored for email.
	Params(ctx context.Context, email string) (models.AuthParams, error)

	// SignIn authenticates and keeps the returned session token.
	SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error)

	// ChangePassword replaces the account password and keeps the new token.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.AuthResponse, error)

	// Ping checks the stored session token and returns its account.
	Ping(ctx context.Context) (models.User, error)

	// Sync performs one synchronization round trip. Conflicts come back in
	// the response, not as errors.
	Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)

	// Version reports the server version.
	Version(ctx context.Context) (models.VersionResponse, error)
}
