package models

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	PwCost   int    `json:"pw_cost"`
	PwNonce  string `json:"pw_nonce"`
	Version  string `json:"version"`
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest replaces the password of the authenticated account.
// Key-derivation parameters are replaced only when non-zero.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	PwCost          int    `json:"pw_cost,omitempty"`
	PwNonce         string `json:"pw_nonce,omitempty"`
	Version         string `json:"version,omitempty"`
}

// AuthParams are the key-derivation parameters a client needs before it can
// compute the password to sign in with.
type AuthParams struct {
	PwCost  int    `json:"pw_cost"`
	PwNonce string `json:"pw_nonce"`
	Version string `json:"version"`
}

// AuthResponse is returned on successful register, sign in and password change.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
