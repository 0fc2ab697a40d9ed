package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// BodySigner computes keyed HMAC-SHA256 signatures of request and response
// bodies for the HashSHA256 integrity header.
//
// Hash instances are pooled per signer, so one signer is safe for
// concurrent use and different keys never share state.
type BodySigner struct {
	pool sync.Pool
}

// NewBodySigner returns a signer for key.
func NewBodySigner(key string) *BodySigner {
	k := []byte(key)
	return &BodySigner{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, k)
			},
		},
	}
}

// Sign returns the raw HMAC-SHA256 digest of data.
func (s *BodySigner) Sign(data []byte) []byte {
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return sum
}

// SignHex returns the hex-encoded digest of data.
func (s *BodySigner) SignHex(data []byte) string {
	return hex.EncodeToString(s.Sign(data))
}

// Verify reports whether signature is the hex-encoded digest of data.
// The comparison is constant-time.
func (s *BodySigner) Verify(data []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(s.Sign(data), expected)
}
