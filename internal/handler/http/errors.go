// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors reported by the transport itself, before a request
// reaches the service layer.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header is
	// missing or does not match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrNoUserID is returned when an authenticated route runs without a
	// user id in its context.
	ErrNoUserID = errors.New("no user id was given")
)
