// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// sync runs one synchronization round trip for the authenticated account.
// A 200 response may still carry rejected submissions in unsaved_items.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		utils.WriteError(w, http.StatusUnauthorized, ErrNoUserID.Error())
		return
	}

	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, ErrInvalidJSON.Error())
		return
	}

	resp, err := h.services.SyncService.Sync(ctx, owner, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Int64("owner", owner).Msg("sync failed")
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
