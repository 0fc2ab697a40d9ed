package models

import "time"

// User represents an account entity used for authentication. Its UserID is
// the partition key of every synchronized item.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// UUID is the public account identifier returned to clients.
	UUID string `json:"uuid"`

	// Email is the unique sign-in identifier.
	Email string `json:"email"`

	// PasswordHash is the server-side Argon2id hash of the client's
	// derived password. Never serialized.
	PasswordHash string `json:"-"`

	// PwCost, PwNonce and Version are the client key-derivation parameters.
	// The server stores them verbatim and hands them back before sign in.
	PwCost  int    `json:"pw_cost"`
	PwNonce string `json:"pw_nonce"`
	Version string `json:"version"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
