// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/models"
)

// alarmService is the concrete implementation of AlarmService: the single
// global alarm state machine.
//
// The active flag is cached in memory and seeded from the newest alarm
// event at construction, so the state survives process restarts. All
// transitions are serialized by one mutex; two concurrent triggers can
// never append two events for the same activation.
type alarmService struct {
	alarmRepository store.AlarmRepository
	linkRepository  store.LinkRepository
	childRepository store.ChildRepository

	gate   *accessGate
	grants *verifyGrants

	// now stamps new events; swapped out in tests.
	now func() int64

	mu     sync.Mutex
	active bool

	logger *logger.Logger
}

// NewAlarmService constructs an AlarmService and seeds the active flag from
// the event log: the alarm is active exactly when the newest event is still
// unacknowledged.
func NewAlarmService(
	ctx context.Context,
	alarmRepository store.AlarmRepository,
	linkRepository store.LinkRepository,
	childRepository store.ChildRepository,
	gate *accessGate,
	grants *verifyGrants,
	logger *logger.Logger,
) (AlarmService, error) {
	service := &alarmService{
		alarmRepository: alarmRepository,
		linkRepository:  linkRepository,
		childRepository: childRepository,
		gate:            gate,
		grants:          grants,
		now:             func() int64 { return time.Now().UnixNano() },
		logger:          logger,
	}

	latest, err := alarmRepository.LatestEvent(ctx)
	switch {
	case err == nil:
		service.active = !latest.Acknowledged
	case errors.Is(err, store.ErrNoAlarmEvents):
		service.active = false
	default:
		return nil, fmt.Errorf("alarm state recovery failed: %w", err)
	}

	logger.Info().Bool("active", service.active).Msg("alarm state recovered from event log")

	return service, nil
}

// TriggerAlarm fires the alarm on behalf of the caller's linked child.
//
// The caller must hold a usable principal link: no link, or a link to an
// archived profile, fails with ErrNotLinked. When the alarm is idle the
// state flips to active and exactly one event is appended; when it is
// already active the call is idempotent, so repeated triggers from a
// re-entered app never flood the event log.
func (a *alarmService) TriggerAlarm(ctx context.Context, caller string) error {
	log := logger.FromContext(ctx)

	if err := a.gate.Authorize(ctx, caller, OpTriggerAlarm); err != nil {
		return err
	}

	link, err := a.linkRepository.GetLinkByPrincipal(ctx, caller)
	if err != nil {
		if errors.Is(err, store.ErrLinkNotFound) {
			return ErrNotLinked
		}
		return fmt.Errorf("link lookup failed: %w", err)
	}

	child, err := a.childRepository.GetChild(ctx, link.ChildID)
	if err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			log.Error().Str("caller", caller).Str("childID", link.ChildID).Msg("link references a missing child profile")
			return ErrNotLinked
		}
		return fmt.Errorf("child lookup failed: %w", err)
	}
	if child.IsArchived {
		return ErrNotLinked
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active {
		return nil
	}

	event, err := a.alarmRepository.AppendEvent(ctx, child.ID, a.now())
	if err != nil {
		log.Err(err).Str("childID", child.ID).Msg("alarm event append failed")
		return fmt.Errorf("alarm event append failed: %w", err)
	}
	a.active = true

	log.Info().Int64("eventID", event.ID).Str("childID", child.ID).Msg("alarm triggered")

	return nil
}

// AcknowledgeAlarm silences the active alarm.
//
// The caller must be an admin whose most recent PIN verification succeeded;
// the grant is consumed even when the alarm turns out to be idle, so every
// acknowledge attempt costs one verification. Acknowledging an idle alarm
// fails with ErrInvalidState.
func (a *alarmService) AcknowledgeAlarm(ctx context.Context, caller string) error {
	log := logger.FromContext(ctx)

	if err := a.gate.Authorize(ctx, caller, OpAcknowledgeAlarm); err != nil {
		return err
	}

	if !a.grants.Consume(caller) {
		log.Warn().Str("caller", caller).Msg("acknowledge without a preceding successful verification")
		return ErrForbidden
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active {
		return ErrInvalidState
	}

	if err := a.alarmRepository.AcknowledgeLatest(ctx); err != nil {
		if errors.Is(err, store.ErrNoAlarmEvents) {
			// cached flag said active but the log disagrees
			log.Error().Msg("no pending alarm event despite active state")
			a.active = false
			return ErrInvalidState
		}
		log.Err(err).Msg("alarm acknowledge failed")
		return fmt.Errorf("alarm acknowledge failed: %w", err)
	}
	a.active = false

	log.Info().Str("caller", caller).Msg("alarm acknowledged")

	return nil
}

// IsAlarmActive reports the current alarm state. Open to everyone, guests
// included; the dashboard polls it continuously.
func (a *alarmService) IsAlarmActive(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active, nil
}

// GetAlarmEvents returns the full trigger history in insertion order.
// Admin only.
func (a *alarmService) GetAlarmEvents(ctx context.Context, caller string) ([]models.AlarmEvent, error) {
	log := logger.FromContext(ctx)

	if err := a.gate.Authorize(ctx, caller, OpListAlarmEvents); err != nil {
		return nil, err
	}

	events, err := a.alarmRepository.ListEvents(ctx)
	if err != nil {
		log.Err(err).Msg("alarm event listing failed")
		return nil, fmt.Errorf("alarm event listing failed: %w", err)
	}

	return events, nil
}
