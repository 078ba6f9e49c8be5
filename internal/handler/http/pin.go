package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
)

type pinRequest struct {
	Pin string `json:"pin"`
}

type verifyPinResponse struct {
	Verified bool `json:"verified"`
}

func (h *Handler) setGuardianPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var request pinRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinService.SetGuardianPin(ctx, caller, request.Pin); err != nil {
		// the pin itself is never logged
		log.Err(err).Str("func", "*Handler.setGuardianPin").Msg("error setting guardian pin")
		http.Error(w, "error setting guardian pin", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifyGuardianPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var request pinRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verified, err := h.services.PinService.VerifyGuardianPin(ctx, caller, request.Pin)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyGuardianPin").Msg("error verifying guardian pin")
		http.Error(w, "error verifying guardian pin", statusFromError(err))
		return
	}

	utils.WriteJSON(w, verifyPinResponse{Verified: verified}, http.StatusOK)
}
