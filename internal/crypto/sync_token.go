// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultKeyIterations is the PBKDF2 iteration count used when none is
// configured.
const DefaultKeyIterations = 100_000

// syncTokenCodec seals boundaries with XChaCha20-Poly1305 under keys derived
// once from the server secret and salt.
//
// Token layout: base64url(nonce ‖ ciphertext ‖ tag), plaintext is the decimal
// boundary and the owner id is bound as additional authenticated data.
//
// The nonce is synthetic: HMAC-SHA256 over owner and boundary under a
// separate key. Equal (owner, boundary) pairs therefore mint equal tokens,
// and distinct pairs never share a nonce.
type syncTokenCodec struct {
	aead     cipher.AEAD
	nonceKey []byte
}

// NewSyncTokenCodec derives the sealing key with PBKDF2-HMAC-SHA256 and
// returns a ready codec. iterations <= 0 selects [DefaultKeyIterations].
//
// Changing secret, salt or iterations invalidates every outstanding token.
func NewSyncTokenCodec(secret, salt string, iterations int) (SyncTokenCodec, error) {
	if secret == "" || salt == "" {
		return nil, ErrEmptyTokenSecret
	}
	if iterations <= 0 {
		iterations = DefaultKeyIterations
	}

	keys := pbkdf2.Key([]byte(secret), []byte(salt), iterations, 2*chacha20poly1305.KeySize, sha256.New)

	aead, err := chacha20poly1305.NewX(keys[:chacha20poly1305.KeySize])
	if err != nil {
		return nil, fmt.Errorf("create sync token cipher: %w", err)
	}

	return &syncTokenCodec{
		aead:     aead,
		nonceKey: keys[chacha20poly1305.KeySize:],
	}, nil
}

// Mint implements [SyncTokenCodec]. It is deterministic: minting the same
// boundary for the same owner twice yields the same token.
func (c *syncTokenCodec) Mint(owner, boundary int64) (string, error) {
	if boundary < 0 {
		return "", fmt.Errorf("mint sync token: negative boundary %d", boundary)
	}

	ad := ownerAD(owner)
	plaintext := strconv.AppendInt(nil, boundary, 10)

	mac := hmac.New(sha256.New, c.nonceKey)
	mac.Write(ad)
	mac.Write([]byte{0})
	mac.Write(plaintext)
	nonce := mac.Sum(nil)[:c.aead.NonceSize()]

	sealed := c.aead.Seal(nonce, nonce, plaintext, ad)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Validate implements [SyncTokenCodec].
func (c *syncTokenCodec) Validate(token string, owner int64) (int64, error) {
	if token == "" {
		return 0, nil
	}

	blob, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidSyncToken
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize+c.aead.Overhead() {
		return 0, ErrInvalidSyncToken
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, ownerAD(owner))
	if err != nil {
		return 0, ErrInvalidSyncToken
	}

	boundary, err := strconv.ParseInt(string(plaintext), 10, 64)
	if err != nil || boundary < 0 {
		return 0, ErrInvalidSyncToken
	}

	return boundary, nil
}

func ownerAD(owner int64) []byte {
	return strconv.AppendInt([]byte("owner:"), owner, 10)
}
