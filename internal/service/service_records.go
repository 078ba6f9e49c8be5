// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/internal/validators"
	"github.com/MKhiriev/guardian-alarm/models"
)

// recordService is the concrete implementation of RecordService. Biometric
// and touch records keep independent id spaces; the unified list is a sorted
// projection over both, never a third store.
type recordService struct {
	recordRepository store.RecordRepository
	childRepository  store.ChildRepository

	gate      *accessGate
	validator validators.Validator

	// now stamps new records; swapped out in tests.
	now func() int64

	logger *logger.Logger
}

// NewRecordService constructs a RecordService wired to the given
// repositories.
func NewRecordService(
	recordRepository store.RecordRepository,
	childRepository store.ChildRepository,
	gate *accessGate,
	logger *logger.Logger,
) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		childRepository:  childRepository,
		gate:             gate,
		validator:        validators.NewInputValidator(),
		now:              func() int64 { return time.Now().UnixNano() },
		logger:           logger,
	}
}

// AddBiometricRecord appends a biometric record stamped with the current
// time and returns the assigned id. Admin only; an unknown child id fails
// with ErrNotFound.
func (r *recordService) AddBiometricRecord(ctx context.Context, caller string, record models.BiometricRecord) (int64, error) {
	log := logger.FromContext(ctx)

	if err := r.gate.Authorize(ctx, caller, OpAddRecord); err != nil {
		return 0, err
	}

	if err := r.validator.Validate(ctx, record); err != nil {
		log.Error().Str("caller", caller).Err(err).Msg("invalid biometric record payload")
		return 0, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := r.requireChild(ctx, record.ChildID); err != nil {
		return 0, err
	}

	record.Timestamp = r.now()
	id, err := r.recordRepository.AddBiometric(ctx, record)
	if err != nil {
		log.Err(err).Str("childID", record.ChildID).Msg("biometric record insert failed")
		return 0, fmt.Errorf("biometric record insert failed: %w", err)
	}

	return id, nil
}

// AddTouchRecord appends a touch record stamped with the current time and
// returns the assigned id. Admin only; an empty sample sequence is accepted.
func (r *recordService) AddTouchRecord(ctx context.Context, caller string, record models.TouchRecord) (int64, error) {
	log := logger.FromContext(ctx)

	if err := r.gate.Authorize(ctx, caller, OpAddRecord); err != nil {
		return 0, err
	}

	if err := r.validator.Validate(ctx, record); err != nil {
		log.Error().Str("caller", caller).Err(err).Msg("invalid touch record payload")
		return 0, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := r.requireChild(ctx, record.ChildID); err != nil {
		return 0, err
	}

	record.RecordTimestamp = r.now()
	id, err := r.recordRepository.AddTouch(ctx, record)
	if err != nil {
		log.Err(err).Str("childID", record.ChildID).Msg("touch record insert failed")
		return 0, fmt.Errorf("touch record insert failed: %w", err)
	}

	return id, nil
}

// DeleteBiometricRecord removes one biometric record. Admin only. A missing
// id fails with ErrNotFound, so a caller retrying a delete can tell the
// prior attempt likely already succeeded.
func (r *recordService) DeleteBiometricRecord(ctx context.Context, caller string, recordID int64) error {
	if err := r.gate.Authorize(ctx, caller, OpDeleteRecord); err != nil {
		return err
	}

	if err := r.recordRepository.DeleteBiometric(ctx, recordID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("biometric record deletion failed: %w", err)
	}

	return nil
}

// DeleteTouchRecord removes one touch record. Admin only.
func (r *recordService) DeleteTouchRecord(ctx context.Context, caller string, recordID int64) error {
	if err := r.gate.Authorize(ctx, caller, OpDeleteRecord); err != nil {
		return err
	}

	if err := r.recordRepository.DeleteTouch(ctx, recordID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("touch record deletion failed: %w", err)
	}

	return nil
}

// GetBiometricRecordsForChild returns the child's biometric records. Any
// authenticated caller; unknown ids yield an empty slice.
func (r *recordService) GetBiometricRecordsForChild(ctx context.Context, caller, childID string) ([]models.BiometricRecord, error) {
	if err := r.gate.Authorize(ctx, caller, OpListRecords); err != nil {
		return nil, err
	}

	records, err := r.recordRepository.ListBiometricByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("biometric record listing failed: %w", err)
	}

	return records, nil
}

// GetTouchRecordsForChild returns the child's touch records. Any
// authenticated caller; unknown ids yield an empty slice.
func (r *recordService) GetTouchRecordsForChild(ctx context.Context, caller, childID string) ([]models.TouchRecord, error) {
	if err := r.gate.Authorize(ctx, caller, OpListRecords); err != nil {
		return nil, err
	}

	records, err := r.recordRepository.ListTouchByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("touch record listing failed: %w", err)
	}

	return records, nil
}

// GetUnifiedRecordList projects both record kinds across all children into
// one list ordered by timestamp descending. Ties are broken by kind-local
// id ascending, then by record type, so the order is deterministic even for
// equal timestamps.
func (r *recordService) GetUnifiedRecordList(ctx context.Context, caller string) ([]models.RecordListEntry, error) {
	log := logger.FromContext(ctx)

	if err := r.gate.Authorize(ctx, caller, OpListRecords); err != nil {
		return nil, err
	}

	biometric, err := r.recordRepository.ListAllBiometric(ctx)
	if err != nil {
		log.Err(err).Msg("biometric record listing failed")
		return nil, fmt.Errorf("biometric record listing failed: %w", err)
	}
	touch, err := r.recordRepository.ListAllTouch(ctx)
	if err != nil {
		log.Err(err).Msg("touch record listing failed")
		return nil, fmt.Errorf("touch record listing failed: %w", err)
	}

	entries := make([]models.RecordListEntry, 0, len(biometric)+len(touch))
	for _, record := range biometric {
		entries = append(entries, models.RecordListEntry{
			ID:         record.ID,
			RecordType: models.RecordTypeBiometric,
			ChildID:    record.ChildID,
			Timestamp:  record.Timestamp,
		})
	}
	for _, record := range touch {
		entries = append(entries, models.RecordListEntry{
			ID:         record.ID,
			RecordType: models.RecordTypeTouch,
			ChildID:    record.ChildID,
			Timestamp:  record.RecordTimestamp,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		if entries[i].ID != entries[j].ID {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].RecordType == models.RecordTypeBiometric
	})

	return entries, nil
}

// requireChild maps an unknown child id to ErrNotFound before a record is
// written to it.
func (r *recordService) requireChild(ctx context.Context, childID string) error {
	if _, err := r.childRepository.GetChild(ctx, childID); err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("child lookup failed: %w", err)
	}
	return nil
}
