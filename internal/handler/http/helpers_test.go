package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/mock"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	testToken  = "good-token"
	testUserID = int64(7)
)

type handlerFixture struct {
	h      *Handler
	router *chi.Mux

	auth *mock.MockAuthService
	sync *mock.MockSyncService
	info *mock.MockAppInfoService
}

func newHandlerFixture(t *testing.T, cfg config.StructuredConfig) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		auth: mock.NewMockAuthService(ctrl),
		sync: mock.NewMockSyncService(ctrl),
		info: mock.NewMockAppInfoService(ctrl),
	}
	f.h = NewHandler(&service.Services{
		AuthService:    f.auth,
		SyncService:    f.sync,
		AppInfoService: f.info,
	}, cfg, logger.Nop())
	f.router = f.h.Init()

	f.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()

	return f
}

func (f *handlerFixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *handlerFixture) doAuthorized(method, path, body string) *httptest.ResponseRecorder {
	return f.do(method, path, body, "Authorization", "Bearer "+testToken)
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp.Errors
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}
