package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/gate"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// errorStatus pairs a sentinel with its response status. Entries are
// checked in order, so more specific errors come first.
type errorStatus struct {
	err    error
	status int
}

var errorStatusMap = []errorStatus{
	{crypto.ErrInvalidSyncToken, http.StatusBadRequest},
	{service.ErrInvalidLimit, http.StatusBadRequest},
	{service.ErrTooManyItems, http.StatusRequestEntityTooLarge},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrNoOwner, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{gate.ErrBusy, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{context.Canceled, http.StatusServiceUnavailable},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrLockingOwner, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError responds with the status mapped from err. Client errors
// carry the error text; server errors only the status text.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(h.retryAfter.Seconds()))))
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		utils.WriteError(w, status)
		return
	}
	utils.WriteError(w, status, err.Error())
}
