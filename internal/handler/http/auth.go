package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, ErrInvalidJSON.Error())
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("user registration failed")
		h.writeServiceError(w, err)
		return
	}

	h.writeAuthResponse(w, r, user)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.signIn").Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, ErrInvalidJSON.Error())
		return
	}

	user, err := h.services.AuthService.SignIn(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.signIn").Msg("sign in failed")
		h.writeServiceError(w, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully signed in")

	h.writeAuthResponse(w, r, user)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	params, err := h.services.AuthService.Params(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("auth params lookup failed")
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, params, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.changePassword").Msg("no user ID was given")
		utils.WriteError(w, http.StatusUnauthorized, ErrNoUserID.Error())
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, ErrInvalidJSON.Error())
		return
	}

	user, err := h.services.AuthService.ChangePassword(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Int64("user_id", userID).Msg("password change failed")
		h.writeServiceError(w, err)
		return
	}

	h.writeAuthResponse(w, r, user)
}

// ping confirms that the session token is still accepted and answers with
// the account it belongs to.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.ping").Msg("no user ID was given")
		utils.WriteError(w, http.StatusUnauthorized, ErrNoUserID.Error())
		return
	}

	user, err := h.services.AuthService.User(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.ping").Int64("user_id", userID).Msg("session user lookup failed")
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// writeAuthResponse issues a fresh session token for user and sends it both
// in the body and in the Authorization header.
func (h *Handler) writeAuthResponse(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeAuthResponse").Msg("creation of token failed")
		utils.WriteError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{User: user, Token: token.SignedString}, http.StatusOK)
}
