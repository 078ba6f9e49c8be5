package http

import (
	"net/http"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
)

type alarmActiveResponse struct {
	Active bool `json:"active"`
}

// isAlarmActive is registered outside the auth group: the dashboard polls
// the alarm state before anyone logs in.
func (h *Handler) isAlarmActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	active, err := h.services.AlarmService.IsAlarmActive(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.isAlarmActive").Msg("error reading alarm state")
		http.Error(w, "error reading alarm state", statusFromError(err))
		return
	}

	utils.WriteJSON(w, alarmActiveResponse{Active: active}, http.StatusOK)
}

func (h *Handler) triggerAlarm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	if err := h.services.AlarmService.TriggerAlarm(ctx, caller); err != nil {
		log.Err(err).Str("func", "*Handler.triggerAlarm").Msg("error triggering alarm")
		http.Error(w, "error triggering alarm", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) acknowledgeAlarm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	if err := h.services.AlarmService.AcknowledgeAlarm(ctx, caller); err != nil {
		log.Err(err).Str("func", "*Handler.acknowledgeAlarm").Msg("error acknowledging alarm")
		http.Error(w, "error acknowledging alarm", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getAlarmEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := callerPrincipal(w, r)
	if !ok {
		return
	}

	events, err := h.services.AlarmService.GetAlarmEvents(ctx, caller)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getAlarmEvents").Msg("error listing alarm events")
		http.Error(w, "error listing alarm events", statusFromError(err))
		return
	}

	utils.WriteJSON(w, events, http.StatusOK)
}
