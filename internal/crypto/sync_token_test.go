package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
)

func newTestCodec(t *testing.T) SyncTokenCodec {
	t.Helper()
	codec, err := NewSyncTokenCodec("test-secret", "test-salt", 1000)
	require.NoError(t, err)
	return codec
}

func TestNewSyncTokenCodec_RequiresSecretAndSalt(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		salt   string
	}{
		{name: "empty secret", secret: "", salt: "salt"},
		{name: "empty salt", secret: "secret", salt: ""},
		{name: "both empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewSyncTokenCodec(tt.secret, tt.salt, 10)
			assert.Nil(t, codec)
			assert.ErrorIs(t, err, ErrEmptyTokenSecret)
		})
	}
}

func TestSyncToken_MintValidateRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	for _, boundary := range []int64{0, 1, 42, 1 << 40} {
		token, err := codec.Mint(7, boundary)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := codec.Validate(token, 7)
		require.NoError(t, err)
		assert.Equal(t, boundary, got)
	}
}

func TestSyncToken_EmptyTokenIsEpochStart(t *testing.T) {
	codec := newTestCodec(t)

	boundary, err := codec.Validate("", 7)
	require.NoError(t, err)
	assert.Zero(t, boundary)
}

func TestSyncToken_MintRejectsNegativeBoundary(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Mint(7, -1)
	assert.Error(t, err)
}

func TestSyncToken_DeterministicMint(t *testing.T) {
	codec := newTestCodec(t)

	a, err := codec.Mint(7, 5)
	require.NoError(t, err)
	b, err := codec.Mint(7, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same owner and boundary must mint the same token")

	otherBoundary, err := codec.Mint(7, 6)
	require.NoError(t, err)
	otherOwner, err := codec.Mint(8, 5)
	require.NoError(t, err)
	assert.NotEqual(t, a, otherBoundary)
	assert.NotEqual(t, a, otherOwner)

	// nonces differ too, not only ciphertexts
	rawA, _ := base64.RawURLEncoding.DecodeString(a)
	rawB, _ := base64.RawURLEncoding.DecodeString(otherBoundary)
	assert.NotEqual(t, rawA[:24], rawB[:24])
}

func TestSyncToken_Rejections(t *testing.T) {
	codec := newTestCodec(t)

	valid, err := codec.Mint(7, 12)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(valid)
	require.NoError(t, err)

	flipped := append([]byte(nil), raw...)
	flipped[len(flipped)/2] ^= 0x01

	otherCodec, err := NewSyncTokenCodec("other-secret", "test-salt", 1000)
	require.NoError(t, err)
	otherSecret, err := otherCodec.Mint(7, 12)
	require.NoError(t, err)

	saltCodec, err := NewSyncTokenCodec("test-secret", "other-salt", 1000)
	require.NoError(t, err)
	otherSalt, err := saltCodec.Mint(7, 12)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		owner int64
	}{
		{name: "foreign owner", token: valid, owner: 8},
		{name: "flipped byte", token: base64.RawURLEncoding.EncodeToString(flipped), owner: 7},
		{name: "truncated", token: valid[:10], owner: 7},
		{name: "not base64", token: "!!!not-a-token!!!", owner: 7},
		{name: "plain number", token: "12", owner: 7},
		{name: "other secret", token: otherSecret, owner: 7},
		{name: "other salt", token: otherSalt, owner: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boundary, err := codec.Validate(tt.token, tt.owner)
			assert.ErrorIs(t, err, ErrInvalidSyncToken)
			assert.Zero(t, boundary)
		})
	}
}

func TestSyncToken_RejectsNonNumericPlaintext(t *testing.T) {
	codec := newTestCodec(t).(*syncTokenCodec)

	nonce := make([]byte, codec.aead.NonceSize())
	for _, plaintext := range []string{"-3", "abc", ""} {
		sealed := codec.aead.Seal(append([]byte(nil), nonce...), nonce, []byte(plaintext), ownerAD(7))
		token := base64.RawURLEncoding.EncodeToString(sealed)

		_, err := codec.Validate(token, 7)
		assert.ErrorIs(t, err, ErrInvalidSyncToken, "plaintext %q", plaintext)
	}
}

func TestSyncToken_Layout(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Mint(7, 1234)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	// 24-byte extended nonce, the decimal boundary and the Poly1305 tag
	assert.Equal(t, chacha20poly1305.NonceSizeX, codec.(*syncTokenCodec).aead.NonceSize())
	assert.Len(t, raw, chacha20poly1305.NonceSizeX+len("1234")+chacha20poly1305.Overhead)
}
