package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an issued or parsed session token.
//
// The subject claim carries the account's UserID in base 10; UserID caches
// its parsed value after validation so handlers never re-parse the claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact form sent as "Authorization: Bearer ...".
	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as the owning account id.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting subject from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to user id: %w", err)
	}

	return userID, nil
}

func (t *Token) String() string {
	return t.SignedString
}
