package crypto

import "errors"

var (
	// ErrInvalidSyncToken is returned for every cursor that cannot be
	// trusted: malformed, tampered, minted for another account or holding
	// a negative or non-numeric boundary. The causes are deliberately not
	// distinguished.
	ErrInvalidSyncToken = errors.New("invalid sync token")

	// ErrEmptyTokenSecret is returned when the codec is built without a
	// secret or salt.
	ErrEmptyTokenSecret = errors.New("sync token secret and salt must not be empty")

	// ErrInvalidHash is returned when a stored password hash cannot be decoded.
	ErrInvalidHash = errors.New("invalid password hash encoding")

	// ErrIncompatibleHashVersion is returned when a stored hash was produced
	// by a different argon2 version.
	ErrIncompatibleHashVersion = errors.New("incompatible argon2 version")
)
