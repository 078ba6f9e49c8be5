package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
)

// sessionRequest carries the opaque principal presented at the session front
// door. Verifying that the caller actually controls the principal is the
// responsibility of the identity provider in front of this service.
type sessionRequest struct {
	Principal string `json:"principal"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.SessionService.CreateToken(ctx, request.Principal)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, "creation of token failed", statusFromError(err))
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, sessionResponse{Token: token.SignedString}, http.StatusOK)
}
