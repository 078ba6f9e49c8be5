package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
	"github.com/MKhiriev/guardian-alarm/models"
)

type recordIDResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) addBiometricRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var record models.BiometricRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	id, err := h.services.RecordService.AddBiometricRecord(ctx, caller, record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addBiometricRecord").Str("childID", record.ChildID).Msg("error adding biometric record")
		http.Error(w, "error adding biometric record", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recordIDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) addTouchRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	var record models.TouchRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	id, err := h.services.RecordService.AddTouchRecord(ctx, caller, record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addTouchRecord").Str("childID", record.ChildID).Msg("error adding touch record")
		http.Error(w, "error adding touch record", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recordIDResponse{ID: id}, http.StatusCreated)
}

// recordIDFromURL parses the {recordID} route parameter. A non-numeric id
// cannot reference any record, so it is answered with 404 to match the
// deletion contract.
func recordIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "recordID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log := logger.FromRequest(r)
		log.Err(err).Str("recordID", raw).Msg("non-numeric record id")
		http.Error(w, "record not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *Handler) deleteBiometricRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	id, ok := recordIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.RecordService.DeleteBiometricRecord(ctx, caller, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteBiometricRecord").Int64("recordID", id).Msg("error deleting biometric record")
		http.Error(w, "error deleting biometric record", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteTouchRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	id, ok := recordIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.RecordService.DeleteTouchRecord(ctx, caller, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTouchRecord").Int64("recordID", id).Msg("error deleting touch record")
		http.Error(w, "error deleting touch record", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getBiometricRecordsForChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	childID := chi.URLParam(r, "childID")
	records, err := h.services.RecordService.GetBiometricRecordsForChild(ctx, caller, childID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBiometricRecordsForChild").Str("childID", childID).Msg("error listing biometric records")
		http.Error(w, "error listing biometric records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getTouchRecordsForChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	childID := chi.URLParam(r, "childID")
	records, err := h.services.RecordService.GetTouchRecordsForChild(ctx, caller, childID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTouchRecordsForChild").Str("childID", childID).Msg("error listing touch records")
		http.Error(w, "error listing touch records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getUnifiedRecordList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	entries, err := h.services.RecordService.GetUnifiedRecordList(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUnifiedRecordList").Msg("error listing records")
		http.Error(w, "error listing records", statusFromError(err))
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
