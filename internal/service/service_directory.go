// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/internal/validators"
	"github.com/MKhiriev/guardian-alarm/models"
)

// directoryService is the concrete implementation of DirectoryService.
// It maps opaque caller principals to stored profiles and owns the
// principal-to-child link table.
type directoryService struct {
	profileRepository store.ProfileRepository
	linkRepository    store.LinkRepository
	childRepository   store.ChildRepository

	gate      *accessGate
	validator validators.Validator

	logger *logger.Logger
}

// NewDirectoryService constructs a DirectoryService wired to the given
// repositories.
func NewDirectoryService(
	profileRepository store.ProfileRepository,
	linkRepository store.LinkRepository,
	childRepository store.ChildRepository,
	gate *accessGate,
	logger *logger.Logger,
) DirectoryService {
	return &directoryService{
		profileRepository: profileRepository,
		linkRepository:    linkRepository,
		childRepository:   childRepository,
		gate:              gate,
		validator:         validators.NewInputValidator(),
		logger:            logger,
	}
}

// GetCallerUserProfile returns the caller's own profile, or ErrNotFound when
// the caller has never registered.
func (d *directoryService) GetCallerUserProfile(ctx context.Context, caller string) (models.UserProfile, error) {
	return d.GetUserProfile(ctx, caller, caller)
}

// GetUserProfile returns the profile stored for principal. Any authenticated
// caller may look up any profile; profiles carry no secrets.
func (d *directoryService) GetUserProfile(ctx context.Context, caller, principal string) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if err := d.gate.Authorize(ctx, caller, OpGetUserProfile); err != nil {
		return models.UserProfile{}, err
	}

	profile, err := d.profileRepository.GetProfile(ctx, principal)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.UserProfile{}, ErrNotFound
		}
		log.Err(err).Str("principal", principal).Msg("profile lookup failed")
		return models.UserProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return profile, nil
}

// SaveCallerUserProfile creates or updates the caller's own profile.
//
// A first save registers the caller with the user role. The role field of
// the submitted payload is always discarded: an existing profile keeps its
// stored role, so a caller can never self-escalate through this path. Role
// changes go through AssignCallerUserRole only.
func (d *directoryService) SaveCallerUserProfile(ctx context.Context, caller string, profile models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if err := d.gate.Authorize(ctx, caller, OpSaveOwnProfile); err != nil {
		return models.UserProfile{}, err
	}

	if err := d.validator.Validate(ctx, profile, validators.FieldName); err != nil {
		log.Error().Str("caller", caller).Err(err).Msg("invalid profile payload")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	role := models.RoleUser
	existing, err := d.profileRepository.GetProfile(ctx, caller)
	switch {
	case err == nil:
		role = existing.Role
	case errors.Is(err, store.ErrProfileNotFound):
		// first save registers the caller
	default:
		log.Err(err).Str("caller", caller).Msg("profile lookup before save failed")
		return models.UserProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	saved := models.UserProfile{
		Principal: caller,
		Name:      profile.Name,
		Role:      role,
	}
	if err := d.profileRepository.SaveProfile(ctx, saved); err != nil {
		log.Err(err).Str("caller", caller).Msg("profile save failed")
		return models.UserProfile{}, fmt.Errorf("profile save failed: %w", err)
	}

	return saved, nil
}

// GetCallerUserRole resolves the caller's role, defaulting to guest when no
// profile exists. It never reports absence as an error.
func (d *directoryService) GetCallerUserRole(ctx context.Context, caller string) (models.Role, error) {
	return d.gate.CallerRole(ctx, caller)
}

// AssignCallerUserRole overwrites the target principal's role. Admin only.
//
// Demoting the last remaining admin is refused with ErrLastAdmin: the
// deployment must always keep at least one principal able to invoke
// guardian operations.
func (d *directoryService) AssignCallerUserRole(ctx context.Context, caller, target string, role models.Role) error {
	log := logger.FromContext(ctx)

	if err := d.gate.Authorize(ctx, caller, OpAssignRole); err != nil {
		return err
	}

	if err := d.validator.Validate(ctx, role); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if role != models.RoleAdmin {
		targetProfile, err := d.profileRepository.GetProfile(ctx, target)
		if err != nil {
			if errors.Is(err, store.ErrProfileNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("target profile lookup failed: %w", err)
		}

		if targetProfile.Role == models.RoleAdmin {
			admins, err := d.profileRepository.CountAdmins(ctx)
			if err != nil {
				return fmt.Errorf("admin count failed: %w", err)
			}
			if admins <= 1 {
				log.Warn().Str("target", target).Msg("refusing to demote the last admin")
				return ErrLastAdmin
			}
		}
	}

	if err := d.profileRepository.AssignRole(ctx, target, role); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return ErrNotFound
		}
		log.Err(err).Str("target", target).Msg("role assignment failed")
		return fmt.Errorf("role assignment failed: %w", err)
	}

	return nil
}

// IsCallerAdmin reports whether the caller currently holds the admin role.
// It is derived from the same role resolution the gate enforces with.
func (d *directoryService) IsCallerAdmin(ctx context.Context, caller string) (bool, error) {
	return d.gate.IsAdmin(ctx, caller)
}

// LinkPrincipalToChild binds a principal to a child profile. Admin only.
// A principal holds at most one link; linking an already-linked principal
// overwrites the previous link.
func (d *directoryService) LinkPrincipalToChild(ctx context.Context, caller, principal, childID string) error {
	log := logger.FromContext(ctx)

	if err := d.gate.Authorize(ctx, caller, OpLinkPrincipal); err != nil {
		return err
	}

	if principal == "" || childID == "" {
		return ErrValidationFailed
	}

	if _, err := d.childRepository.GetChild(ctx, childID); err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("child lookup failed: %w", err)
	}

	link := models.PrincipalLink{Principal: principal, ChildID: childID}
	if err := d.linkRepository.UpsertLink(ctx, link); err != nil {
		log.Err(err).Str("principal", principal).Str("childID", childID).Msg("link upsert failed")
		return fmt.Errorf("link upsert failed: %w", err)
	}

	return nil
}

// UnlinkPrincipalFromChild removes the principal's link row. Admin only.
// Returns ErrNotFound when the principal holds no link.
func (d *directoryService) UnlinkPrincipalFromChild(ctx context.Context, caller, principal string) error {
	if err := d.gate.Authorize(ctx, caller, OpUnlinkPrincipal); err != nil {
		return err
	}

	if err := d.linkRepository.DeleteLink(ctx, principal); err != nil {
		if errors.Is(err, store.ErrLinkNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("link deletion failed: %w", err)
	}

	return nil
}

// GetLinkedChildProfile resolves the caller's own link to the full child
// profile. Returns ErrNotFound when the caller is unlinked; the profile is
// returned even when archived, the caller decides what to do with the flag.
func (d *directoryService) GetLinkedChildProfile(ctx context.Context, caller string) (models.ChildProfile, error) {
	log := logger.FromContext(ctx)

	if err := d.gate.Authorize(ctx, caller, OpGetLinkedChild); err != nil {
		return models.ChildProfile{}, err
	}

	link, err := d.linkRepository.GetLinkByPrincipal(ctx, caller)
	if err != nil {
		if errors.Is(err, store.ErrLinkNotFound) {
			return models.ChildProfile{}, ErrNotFound
		}
		return models.ChildProfile{}, fmt.Errorf("link lookup failed: %w", err)
	}

	child, err := d.childRepository.GetChild(ctx, link.ChildID)
	if err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			// links never cascade on archive, and rows are never deleted,
			// so a dangling link means corrupted state
			log.Error().Str("caller", caller).Str("childID", link.ChildID).Msg("link references a missing child profile")
			return models.ChildProfile{}, ErrNotFound
		}
		return models.ChildProfile{}, fmt.Errorf("child lookup failed: %w", err)
	}

	return child, nil
}
