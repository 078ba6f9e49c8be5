// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/models"
)

// OperationKind names one guarded operation of the request boundary. Every
// service method authorizes against exactly one kind, so the whole access
// policy is auditable in the table below instead of being scattered across
// handlers.
type OperationKind string

const (
	OpGetUserProfile   OperationKind = "directory.get_profile"
	OpSaveOwnProfile   OperationKind = "directory.save_own_profile"
	OpGetCallerRole    OperationKind = "directory.get_caller_role"
	OpAssignRole       OperationKind = "directory.assign_role"
	OpLinkPrincipal    OperationKind = "directory.link_principal"
	OpUnlinkPrincipal  OperationKind = "directory.unlink_principal"
	OpGetLinkedChild   OperationKind = "directory.get_linked_child"
	OpCreateChild      OperationKind = "children.create"
	OpRenameChild      OperationKind = "children.rename"
	OpArchiveChild     OperationKind = "children.archive"
	OpListChildren     OperationKind = "children.list"
	OpAddRecord        OperationKind = "records.add"
	OpDeleteRecord     OperationKind = "records.delete"
	OpListRecords      OperationKind = "records.list"
	OpSetPin           OperationKind = "pin.set"
	OpVerifyPin        OperationKind = "pin.verify"
	OpTriggerAlarm     OperationKind = "alarm.trigger"
	OpAcknowledgeAlarm OperationKind = "alarm.acknowledge"
	OpReadAlarmState   OperationKind = "alarm.read_state"
	OpListAlarmEvents  OperationKind = "alarm.list_events"
)

// accessPolicy maps each operation to the least role allowed to invoke it.
// RoleGuest means anyone, RoleUser means any authenticated caller regardless
// of stored role, RoleAdmin means a stored profile holding the admin role.
var accessPolicy = map[OperationKind]models.Role{
	OpGetUserProfile:   models.RoleUser,
	OpSaveOwnProfile:   models.RoleUser,
	OpGetCallerRole:    models.RoleGuest,
	OpAssignRole:       models.RoleAdmin,
	OpLinkPrincipal:    models.RoleAdmin,
	OpUnlinkPrincipal:  models.RoleAdmin,
	OpGetLinkedChild:   models.RoleUser,
	OpCreateChild:      models.RoleAdmin,
	OpRenameChild:      models.RoleAdmin,
	OpArchiveChild:     models.RoleAdmin,
	OpListChildren:     models.RoleUser,
	OpAddRecord:        models.RoleAdmin,
	OpDeleteRecord:     models.RoleAdmin,
	OpListRecords:      models.RoleUser,
	OpSetPin:           models.RoleAdmin,
	OpVerifyPin:        models.RoleUser,
	OpTriggerAlarm:     models.RoleUser,
	OpAcknowledgeAlarm: models.RoleAdmin,
	OpReadAlarmState:   models.RoleGuest,
	OpListAlarmEvents:  models.RoleAdmin,
}

// accessGate resolves caller roles from the profile repository and enforces
// accessPolicy. It is shared by every service so that role resolution and
// enforcement can never diverge.
type accessGate struct {
	profileRepository store.ProfileRepository

	logger *logger.Logger
}

func newAccessGate(profileRepository store.ProfileRepository, logger *logger.Logger) *accessGate {
	return &accessGate{
		profileRepository: profileRepository,
		logger:            logger,
	}
}

// CallerRole resolves the caller's stored role. Callers with no profile, and
// the empty caller, resolve to guest; this method never reports absence as
// an error.
func (g *accessGate) CallerRole(ctx context.Context, caller string) (models.Role, error) {
	if caller == "" {
		return models.RoleGuest, nil
	}

	profile, err := g.profileRepository.GetProfile(ctx, caller)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.RoleGuest, nil
		}
		return "", fmt.Errorf("caller role lookup failed: %w", err)
	}

	if !profile.Role.Valid() {
		return models.RoleGuest, nil
	}

	return profile.Role, nil
}

// Authorize checks the caller against the policy table for op. Failure is
// always ErrForbidden, never a silent downgrade of the operation.
func (g *accessGate) Authorize(ctx context.Context, caller string, op OperationKind) error {
	log := logger.FromContext(ctx)

	required, known := accessPolicy[op]
	if !known {
		log.Error().Str("operation", string(op)).Msg("operation missing from access policy")
		return ErrForbidden
	}

	switch required {
	case models.RoleGuest:
		return nil

	case models.RoleUser:
		if caller == "" {
			return ErrForbidden
		}
		return nil

	case models.RoleAdmin:
		if caller == "" {
			return ErrForbidden
		}
		role, err := g.CallerRole(ctx, caller)
		if err != nil {
			return err
		}
		if role != models.RoleAdmin {
			log.Debug().
				Str("caller", caller).
				Str("operation", string(op)).
				Str("role", string(role)).
				Msg("caller role below required role")
			return ErrForbidden
		}
		return nil
	}

	return ErrForbidden
}

// IsAdmin reports whether the caller currently holds the admin role.
func (g *accessGate) IsAdmin(ctx context.Context, caller string) (bool, error) {
	role, err := g.CallerRole(ctx, caller)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}
