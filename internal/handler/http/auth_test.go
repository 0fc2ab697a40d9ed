package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// ─────────────────────────────────────────────
// register / sign_in
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	user := models.User{UserID: 1, UUID: "u-1", Email: "a@b.c", PwCost: 1000}

	tests := []struct {
		name       string
		body       string
		setup      func(f *handlerFixture)
		wantStatus int
		wantToken  bool
	}{
		{
			name: "success returns user and token",
			body: `{"email":"a@b.c","password":"pw","pw_cost":1000}`,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{Email: "a@b.c", Password: "pw", PwCost: 1000}).Return(user, nil)
				f.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "jwt"}, nil)
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name:       "invalid json",
			body:       `{"email":`,
			setup:      func(f *handlerFixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid data",
			body: `{"email":"nope"}`,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidDataProvided)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: `{"email":"a@b.c","password":"pw"}`,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, fmt.Errorf("wrapped: %w", store.ErrEmailAlreadyExists))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "token creation fails",
			body: `{"email":"a@b.c","password":"pw"}`,
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(user, nil)
				f.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{}, service.ErrTokenCreationFailed)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, config.StructuredConfig{})
			tt.setup(f)

			rec := f.do(http.MethodPost, "/api/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if !tt.wantToken {
				assert.NotEmpty(t, decodeErrors(t, rec))
				return
			}

			assert.Equal(t, "Bearer jwt", rec.Header().Get("Authorization"))
			var resp models.AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "jwt", resp.Token)
			assert.Equal(t, "u-1", resp.User.UUID)
			assert.NotContains(t, rec.Body.String(), "password_hash")
		})
	}
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "wrong credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "store down", err: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, config.StructuredConfig{})
			f.auth.EXPECT().SignIn(gomock.Any(), models.SignInRequest{Email: "a@b.c", Password: "pw"}).Return(models.User{UserID: 2}, tt.err)
			if tt.err == nil {
				f.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{SignedString: "jwt"}, nil)
			}

			rec := f.do(http.MethodPost, "/api/auth/sign_in", `{"email":"a@b.c","password":"pw"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, []string{http.StatusText(http.StatusInternalServerError)}, decodeErrors(t, rec),
					"server errors must not leak details")
			}
		})
	}
}

// ─────────────────────────────────────────────
// params
// ─────────────────────────────────────────────

func TestParams(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		f.auth.EXPECT().Params(gomock.Any(), "a@b.c").Return(models.AuthParams{PwCost: 5, PwNonce: "n", Version: "003"}, nil)

		rec := f.do(http.MethodGet, "/api/auth/params?email=a@b.c", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"pw_cost":5,"pw_nonce":"n","version":"003"}`, rec.Body.String())
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		f.auth.EXPECT().Params(gomock.Any(), "x@y.z").Return(models.AuthParams{}, store.ErrNoUserWasFound)

		rec := f.do(http.MethodGet, "/api/auth/params?email=x@y.z", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// ─────────────────────────────────────────────
// change_pw
// ─────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	t.Run("success issues a new token", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		req := models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"}
		f.auth.EXPECT().ChangePassword(gomock.Any(), testUserID, req).Return(models.User{UserID: testUserID}, nil)
		f.auth.EXPECT().CreateToken(gomock.Any(), models.User{UserID: testUserID}).Return(models.Token{SignedString: "fresh"}, nil)

		rec := f.doAuthorized(http.MethodPost, "/api/auth/change_pw", `{"current_password":"old","new_password":"new"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer fresh", rec.Header().Get("Authorization"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		f.auth.EXPECT().ChangePassword(gomock.Any(), testUserID, gomock.Any()).Return(models.User{}, service.ErrInvalidCredentials)

		rec := f.doAuthorized(http.MethodPost, "/api/auth/change_pw", `{"current_password":"bad","new_password":"new"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []string{service.ErrInvalidCredentials.Error()}, decodeErrors(t, rec))
	})

	t.Run("invalid json", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})

		rec := f.doAuthorized(http.MethodPost, "/api/auth/change_pw", `[`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePassword_WithoutToken(t *testing.T) {
	f := newHandlerFixture(t, config.StructuredConfig{})

	rec := f.do(http.MethodPost, "/api/auth/change_pw", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{ErrEmptyAuthorizationHeader.Error()}, decodeErrors(t, rec))
}

// ─────────────────────────────────────────────
// ping
// ─────────────────────────────────────────────

func TestPing(t *testing.T) {
	t.Run("answers with the session account", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		f.auth.EXPECT().User(gomock.Any(), testUserID).
			Return(models.User{UserID: testUserID, UUID: "u-7", Email: "a@b.c", PasswordHash: "secret"}, nil)

		rec := f.doAuthorized(http.MethodGet, "/api/auth/ping", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "a@b.c", got.Email)
		assert.Equal(t, "u-7", got.UUID)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("account removed", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})
		f.auth.EXPECT().User(gomock.Any(), testUserID).
			Return(models.User{}, fmt.Errorf("user search by id failed: %w", store.ErrNoUserWasFound))

		rec := f.doAuthorized(http.MethodGet, "/api/auth/ping", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("without token", func(t *testing.T) {
		f := newHandlerFixture(t, config.StructuredConfig{})

		rec := f.do(http.MethodGet, "/api/auth/ping", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
