// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/gate"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

func TestSync_Success(t *testing.T) {
	f := newHandlerFixture(t, config.StructuredConfig{})

	updatedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	want := models.SyncResponse{
		RetrievedItems: []models.Item{{Sequence: 4, Owner: testUserID, UUID: "x", Content: "c", ContentType: "t", UpdatedAt: updatedAt}},
		SavedItems:     []models.Item{},
		UnsavedItems: []models.Conflict{{
			Type:       models.SyncConflict,
			ServerItem: &models.Item{UUID: "y", ContentType: "t", UpdatedAt: updatedAt},
		}},
		SyncToken: "next",
		HasMore:   true,
	}

	f.sync.EXPECT().Sync(gomock.Any(), testUserID, models.SyncRequest{
		SyncToken: "prev",
		Items:     []models.ItemSubmission{{UUID: "y", Content: "c2", ContentType: "t"}},
		Limit:     1,
	}).Return(want, nil)

	rec := f.doAuthorized(http.MethodPost, "/api/items/sync",
		`{"sync_token":"prev","limit":1,"items":[{"uuid":"y","content":"c2","content_type":"t"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "next", got.SyncToken)
	assert.True(t, got.HasMore)
	require.Len(t, got.UnsavedItems, 1)
	assert.Equal(t, "y", got.UnsavedItems[0].UUID())
	assert.NotContains(t, rec.Body.String(), "sequence", "sequence numbers never leave the server")
	assert.NotContains(t, rec.Body.String(), "owner")
}

func TestSync_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRetryAfter string
		wantMessage    bool
	}{
		{name: "invalid token", err: crypto.ErrInvalidSyncToken, wantStatus: http.StatusBadRequest, wantMessage: true},
		{name: "negative limit", err: fmt.Errorf("%w: -1", service.ErrInvalidLimit), wantStatus: http.StatusBadRequest, wantMessage: true},
		{name: "too many items", err: service.ErrTooManyItems, wantStatus: http.StatusRequestEntityTooLarge, wantMessage: true},
		{name: "busy account", err: gate.ErrBusy, wantStatus: http.StatusServiceUnavailable, wantRetryAfter: "2", wantMessage: true},
		{name: "gate wait cancelled", err: fmt.Errorf("acquire gate: %w", context.Canceled), wantStatus: http.StatusServiceUnavailable, wantRetryAfter: "2", wantMessage: true},
		{name: "deadline exceeded", err: fmt.Errorf("acquire gate: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout},
		{name: "store unavailable", err: fmt.Errorf("scan items: %w", store.ErrExecutingQuery), wantStatus: http.StatusInternalServerError},
		{name: "unknown", err: fmt.Errorf("surprise"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, config.StructuredConfig{Sync: config.Sync{GateWait: 1500 * time.Millisecond}})
			f.sync.EXPECT().Sync(gomock.Any(), testUserID, gomock.Any()).Return(models.SyncResponse{}, tt.err)

			rec := f.doAuthorized(http.MethodPost, "/api/items/sync", `{}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))

			messages := decodeErrors(t, rec)
			if tt.wantMessage {
				assert.Equal(t, []string{tt.err.Error()}, messages)
			} else {
				assert.Equal(t, []string{http.StatusText(tt.wantStatus)}, messages)
			}
		})
	}
}

func TestSync_InvalidJSON(t *testing.T) {
	f := newHandlerFixture(t, config.StructuredConfig{})

	rec := f.doAuthorized(http.MethodPost, "/api/items/sync", `{"items": "nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{ErrInvalidJSON.Error()}, decodeErrors(t, rec))
}

func TestSync_WithoutUserID(t *testing.T) {
	f := newHandlerFixture(t, config.StructuredConfig{})

	// called directly, so no auth middleware runs
	rec := httptest.NewRecorder()
	f.h.sync(rec, httptest.NewRequest(http.MethodPost, "/api/items/sync", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{ErrNoUserID.Error()}, decodeErrors(t, rec))
}
