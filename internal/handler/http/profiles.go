package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
	"github.com/MKhiriev/guardian-alarm/models"
)

// callerPrincipal pulls the authenticated principal that the auth middleware
// stored in the request context. A missing principal on an authenticated
// route means the middleware was bypassed, which is answered with 401.
func callerPrincipal(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, found := utils.GetPrincipalFromContext(r.Context())
	if !found {
		log := logger.FromRequest(r)
		log.Error().Str("uri", r.RequestURI).Msg("no principal in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	return principal, true
}

func (h *Handler) getCallerUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	profile, err := h.services.DirectoryService.GetCallerUserProfile(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCallerUserProfile").Msg("error getting caller profile")
		http.Error(w, "error getting caller profile", statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) getUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	principal := chi.URLParam(r, "principal")
	profile, err := h.services.DirectoryService.GetUserProfile(ctx, caller, principal)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUserProfile").Str("principal", principal).Msg("error getting profile")
		http.Error(w, "error getting profile", statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) saveCallerUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.DirectoryService.SaveCallerUserProfile(ctx, caller, profile)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveCallerUserProfile").Msg("error saving caller profile")
		http.Error(w, "error saving caller profile", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

type roleResponse struct {
	Role models.Role `json:"role"`
}

func (h *Handler) getCallerUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	role, err := h.services.DirectoryService.GetCallerUserRole(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCallerUserRole").Msg("error resolving caller role")
		http.Error(w, "error resolving caller role", statusFromError(err))
		return
	}

	utils.WriteJSON(w, roleResponse{Role: role}, http.StatusOK)
}

type assignRoleRequest struct {
	Role models.Role `json:"role"`
}

func (h *Handler) assignCallerUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var request assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	target := chi.URLParam(r, "principal")
	if err := h.services.DirectoryService.AssignCallerUserRole(ctx, caller, target, request.Role); err != nil {
		log.Err(err).Str("func", "*Handler.assignCallerUserRole").Str("target", target).Msg("error assigning role")
		http.Error(w, "error assigning role", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

type isAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

func (h *Handler) isCallerAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	isAdmin, err := h.services.DirectoryService.IsCallerAdmin(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.isCallerAdmin").Msg("error resolving admin flag")
		http.Error(w, "error resolving admin flag", statusFromError(err))
		return
	}

	utils.WriteJSON(w, isAdminResponse{IsAdmin: isAdmin}, http.StatusOK)
}

type linkRequest struct {
	ChildID string `json:"childId"`
}

func (h *Handler) linkPrincipalToChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var request linkRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	principal := chi.URLParam(r, "principal")
	if err := h.services.DirectoryService.LinkPrincipalToChild(ctx, caller, principal, request.ChildID); err != nil {
		log.Err(err).Str("func", "*Handler.linkPrincipalToChild").Str("principal", principal).Msg("error linking principal")
		http.Error(w, "error linking principal", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) unlinkPrincipalFromChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	principal := chi.URLParam(r, "principal")
	if err := h.services.DirectoryService.UnlinkPrincipalFromChild(ctx, caller, principal); err != nil {
		log.Err(err).Str("func", "*Handler.unlinkPrincipalFromChild").Str("principal", principal).Msg("error unlinking principal")
		http.Error(w, "error unlinking principal", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getLinkedChildProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	child, err := h.services.DirectoryService.GetLinkedChildProfile(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getLinkedChildProfile").Msg("error resolving linked child")
		http.Error(w, "error resolving linked child", statusFromError(err))
		return
	}

	utils.WriteJSON(w, child, http.StatusOK)
}
