package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of the body it accompanies.
const hashHeader = "HashSHA256"

// withHashing checks the integrity header of requests with a body and signs
// every response body. Requests without a body, such as GET, pass unchecked.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
			utils.WriteError(w, http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) > 0 && !h.signer.Verify(body, r.Header.Get(hashHeader)) {
			log.Error().Str("func", "*Handler.withHashing").
				Str("hash from request", r.Header.Get(hashHeader)).
				Msg("hashes are not equal")
			utils.WriteError(w, http.StatusBadRequest, ErrIntegrityCheckFailed.Error())
			return
		}

		bw := &bufferedResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(bw, r)

		w.Header().Set(hashHeader, h.signer.SignHex(bw.body.Bytes()))
		w.WriteHeader(bw.status)
		if _, err = w.Write(bw.body.Bytes()); err != nil {
			log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to write response")
		}
	})
}
