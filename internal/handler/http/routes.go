// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization: the session front door, build info and
	// the alarm poll, which the dashboard reads before anyone logs in
	router.Group(func(r chi.Router) {
		r.Post("/api/session", h.createSession)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/alarm/active", h.isAlarmActive)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/profile", h.getCallerUserProfile)
		r.Put("/api/user/profile", h.saveCallerUserProfile)
		r.Get("/api/user/role", h.getCallerUserRole)
		r.Get("/api/user/admin", h.isCallerAdmin)
		r.Get("/api/user/linked-child", h.getLinkedChildProfile)

		r.Get("/api/users/{principal}", h.getUserProfile)
		r.Put("/api/users/{principal}/role", h.assignCallerUserRole)
		r.Put("/api/users/{principal}/link", h.linkPrincipalToChild)
		r.Delete("/api/users/{principal}/link", h.unlinkPrincipalFromChild)

		r.Post("/api/children", h.createChildProfile)
		r.Get("/api/children", h.getChildProfiles)
		r.Put("/api/children/{childID}/name", h.renameChildProfile)
		r.Post("/api/children/{childID}/archive", h.archiveChildProfile)
		r.Get("/api/children/{childID}/records/biometric", h.getBiometricRecordsForChild)
		r.Get("/api/children/{childID}/records/touch", h.getTouchRecordsForChild)

		r.Post("/api/records/biometric", h.addBiometricRecord)
		r.Delete("/api/records/biometric/{recordID}", h.deleteBiometricRecord)
		r.Post("/api/records/touch", h.addTouchRecord)
		r.Delete("/api/records/touch/{recordID}", h.deleteTouchRecord)
		r.Get("/api/records", h.getUnifiedRecordList)

		r.Put("/api/pin", h.setGuardianPin)
		r.Post("/api/pin/verify", h.verifyGuardianPin)

		r.Post("/api/alarm/trigger", h.triggerAlarm)
		r.Post("/api/alarm/acknowledge", h.acknowledgeAlarm)
		r.Get("/api/alarm/events", h.getAlarmEvents)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
