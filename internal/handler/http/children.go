package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
	"github.com/MKhiriev/guardian-alarm/models"
)

func (h *Handler) createChildProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var child models.ChildProfile
	if err := json.NewDecoder(r.Body).Decode(&child); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ChildrenService.CreateChildProfile(ctx, caller, child)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createChildProfile").Str("childID", child.ID).Msg("error creating child profile")
		http.Error(w, "error creating child profile", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

type renameChildRequest struct {
	Name string `json:"name"`
}

func (h *Handler) renameChildProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var request renameChildRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	childID := chi.URLParam(r, "childID")
	if err := h.services.ChildrenService.RenameChildProfile(ctx, caller, childID, request.Name); err != nil {
		log.Err(err).Str("func", "*Handler.renameChildProfile").Str("childID", childID).Msg("error renaming child profile")
		http.Error(w, "error renaming child profile", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) archiveChildProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	childID := chi.URLParam(r, "childID")
	if err := h.services.ChildrenService.ArchiveChildProfile(ctx, caller, childID); err != nil {
		log.Err(err).Str("func", "*Handler.archiveChildProfile").Str("childID", childID).Msg("error archiving child profile")
		http.Error(w, "error archiving child profile", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getChildProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	children, err := h.services.ChildrenService.GetChildProfiles(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChildProfiles").Msg("error listing child profiles")
		http.Error(w, "error listing child profiles", statusFromError(err))
		return
	}

	utils.WriteJSON(w, children, http.StatusOK)
}
