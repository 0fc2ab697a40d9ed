package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// SyncTokenCodec mints and validates opaque sync cursors.
//
// A token hides the boundary sequence number and authenticates it together
// with the owning account, so a client can neither read, forge, shift nor
// replay a cursor onto another account.
type SyncTokenCodec interface {
	// Mint seals boundary for owner into an opaque token.
	Mint(owner, boundary int64) (string, error)

	// Validate returns the boundary sealed in token for owner.
	// An empty token yields boundary 0. Any parse, integrity or ownership
	// failure yields [ErrInvalidSyncToken].
	Validate(token string, owner int64) (int64, error)
}

// PasswordHasher hashes account passwords for storage and verifies them.
type PasswordHasher interface {
	// Hash returns an encoded hash that embeds its own parameters and salt.
	Hash(password string) (string, error)

	// Compare reports whether password matches encodedHash.
	Compare(encodedHash, password string) (bool, error)
}
