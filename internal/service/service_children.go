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

// childrenService is the concrete implementation of ChildrenService.
// Child profiles are soft-deleted only: archiving flips a flag and never
// cascades to links or alarm events, which stay behind for audit.
type childrenService struct {
	childRepository store.ChildRepository

	gate      *accessGate
	validator validators.Validator

	logger *logger.Logger
}

// NewChildrenService constructs a ChildrenService wired to the given
// repository.
func NewChildrenService(childRepository store.ChildRepository, gate *accessGate, logger *logger.Logger) ChildrenService {
	return &childrenService{
		childRepository: childRepository,
		gate:            gate,
		validator:       validators.NewInputValidator(),
		logger:          logger,
	}
}

// CreateChildProfile inserts a new child profile. Admin only. A taken id
// fails with ErrConflict and leaves the existing profile untouched, so a
// retry after a transient failure is safe.
func (c *childrenService) CreateChildProfile(ctx context.Context, caller string, child models.ChildProfile) (models.ChildProfile, error) {
	log := logger.FromContext(ctx)

	if err := c.gate.Authorize(ctx, caller, OpCreateChild); err != nil {
		return models.ChildProfile{}, err
	}

	if err := c.validator.Validate(ctx, child); err != nil {
		log.Error().Str("caller", caller).Err(err).Msg("invalid child profile payload")
		return models.ChildProfile{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	child.IsArchived = false
	if err := c.childRepository.CreateChild(ctx, child); err != nil {
		if errors.Is(err, store.ErrChildAlreadyExists) {
			return models.ChildProfile{}, ErrConflict
		}
		log.Err(err).Str("childID", child.ID).Msg("child creation failed")
		return models.ChildProfile{}, fmt.Errorf("child creation failed: %w", err)
	}

	return child, nil
}

// RenameChildProfile updates the display name. Admin only. Archived
// profiles may still be renamed.
func (c *childrenService) RenameChildProfile(ctx context.Context, caller, childID, name string) error {
	if err := c.gate.Authorize(ctx, caller, OpRenameChild); err != nil {
		return err
	}

	if err := c.validator.Validate(ctx, models.ChildProfile{ID: childID, Name: name}); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := c.childRepository.RenameChild(ctx, childID, name); err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("child rename failed: %w", err)
	}

	return nil
}

// ArchiveChildProfile soft-deletes a child profile. Admin only. Archiving
// an already-archived profile succeeds; links and alarm events are left in
// place.
func (c *childrenService) ArchiveChildProfile(ctx context.Context, caller, childID string) error {
	if err := c.gate.Authorize(ctx, caller, OpArchiveChild); err != nil {
		return err
	}

	if err := c.validator.Validate(ctx, models.ChildProfile{ID: childID}, validators.FieldChildID); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := c.childRepository.ArchiveChild(ctx, childID); err != nil {
		if errors.Is(err, store.ErrChildNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("child archive failed: %w", err)
	}

	return nil
}

// GetChildProfiles returns every child profile, archived ones included.
// Any authenticated caller may list.
func (c *childrenService) GetChildProfiles(ctx context.Context, caller string) ([]models.ChildProfile, error) {
	log := logger.FromContext(ctx)

	if err := c.gate.Authorize(ctx, caller, OpListChildren); err != nil {
		return nil, err
	}

	children, err := c.childRepository.ListChildren(ctx)
	if err != nil {
		log.Err(err).Msg("child listing failed")
		return nil, fmt.Errorf("child listing failed: %w", err)
	}

	return children, nil
}
