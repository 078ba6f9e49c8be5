package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
)

// profileRepository is the SQL-backed implementation of [ProfileRepository].
// It manages the "user_profiles" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// GetProfile retrieves the profile stored for the given principal.
//
// Error handling:
//   - No matching row → [ErrProfileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *profileRepository) GetProfile(ctx context.Context, principal string) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	var profile models.UserProfile
	row := r.db.QueryRowContext(ctx, getProfile, principal)

	if err := row.Scan(&profile.Principal, &profile.Name, &profile.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, ErrProfileNotFound
		}

		log.Err(err).Str("func", "*profileRepository.GetProfile").Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return profile, nil
}

// SaveProfile inserts the profile row or overwrites the existing one for the
// same principal. Profiles are never deleted, only overwritten.
func (r *profileRepository) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveProfile, profile.Principal, profile.Name, profile.Role); err != nil {
		log.Err(err).Str("func", "*profileRepository.SaveProfile").Msg("error: statement failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// AssignRole overwrites the role column of the target principal's profile.
//
// Error handling:
//   - Zero affected rows → [ErrProfileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *profileRepository) AssignRole(ctx context.Context, principal string, role models.Role) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, assignRole, principal, role)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.AssignRole").Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// CountAdmins returns the number of profiles currently holding the admin
// role. Used to protect against demoting the last remaining admin.
func (r *profileRepository) CountAdmins(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, countAdmins)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*profileRepository.CountAdmins").Msg("error: scanning error")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}
