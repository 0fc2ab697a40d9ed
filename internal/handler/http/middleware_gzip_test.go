// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

// echoHandler replies with "Processed: " and the request body.
var echoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Processed: " + string(body)))
})

func TestGZip(t *testing.T) {
	tests := []struct {
		name                 string
		acceptEncoding       string
		contentEncoding      string
		requestBody          string
		wantResponseGzipped  bool
		expectedResponseBody string
	}{
		{
			name:                 "compress response when client accepts gzip",
			acceptEncoding:       "gzip",
			wantResponseGzipped:  true,
			expectedResponseBody: "Processed: ",
		},
		{
			name:                 "no compression when client doesn't accept gzip",
			expectedResponseBody: "Processed: ",
		},
		{
			name:                 "accept-encoding with multiple values including gzip",
			acceptEncoding:       "deflate, gzip;q=1.0, br",
			wantResponseGzipped:  true,
			expectedResponseBody: "Processed: ",
		},
		{
			name:                 "decompress gzipped request body",
			contentEncoding:      "gzip",
			requestBody:          `{"items":[]}`,
			expectedResponseBody: `Processed: {"items":[]}`,
		},
		{
			name:                 "decompress request and compress response",
			acceptEncoding:       "gzip",
			contentEncoding:      "gzip",
			requestBody:          "Request data",
			wantResponseGzipped:  true,
			expectedResponseBody: "Processed: Request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(tt.requestBody)
			if tt.contentEncoding == "gzip" {
				body = bytes.NewReader(gzipBytes(t, []byte(tt.requestBody)))
			}

			req := httptest.NewRequest(http.MethodPost, "/", body)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			req.Header.Set("Content-Encoding", tt.contentEncoding)
			rec := httptest.NewRecorder()

			withGZip(echoHandler).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			respBody := rec.Body.Bytes()
			if tt.wantResponseGzipped {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

				gr, err := gzip.NewReader(bytes.NewReader(respBody))
				require.NoError(t, err)
				respBody, err = io.ReadAll(gr)
				require.NoError(t, err)
			} else {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
			}

			assert.Equal(t, tt.expectedResponseBody, string(respBody))
		})
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	called := false
	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"invalid gzip data"}, decodeErrors(t, rec))
}

func TestGZip_WriterIsReusable(t *testing.T) {
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()

		withGZip(okHandler("payload")).ServeHTTP(rec, req)

		gr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		out, err := io.ReadAll(gr)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(out))
	}
}
