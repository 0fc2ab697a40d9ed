package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(f *handlerFixture)
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantError:  utils.ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "scheme without token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantError:  utils.ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:   "rejected token",
			header: "Bearer expired",
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  service.ErrTokenIsExpiredOrInvalid.Error(),
		},
		{
			name:       "valid token, lower-case scheme",
			header:     "bearer " + testToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, config.StructuredConfig{})
			if tt.setup != nil {
				tt.setup(f)
			}

			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			f.h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, []string{tt.wantError}, decodeErrors(t, rec))
				assert.Zero(t, gotUserID, "next must not run")
				return
			}
			assert.Equal(t, testUserID, gotUserID)
		})
	}
}
