// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
//
// A path that exists but does not accept the requested method is answered
// with 404 instead of chi's 405, so the API does not reveal which methods a
// route would accept.
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(methodNotAllowed)
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not registered for route")
	notFound(w, r)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusNotFound)
}
