package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
	"github.com/jackc/pgerrcode"
)

// childRepository is the SQL-backed implementation of [ChildRepository].
// It manages the "child_profiles" table.
type childRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChildRepository constructs a [ChildRepository] backed by the provided
// database connection and logger.
func NewChildRepository(db *DB, logger *logger.Logger) ChildRepository {
	logger.Debug().Msg("creating child repository")
	return &childRepository{
		db:     db,
		logger: logger,
	}
}

// CreateChild inserts a new child profile row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrChildAlreadyExists]; the
//     existing row is left untouched.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *childRepository) CreateChild(ctx context.Context, child models.ChildProfile) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createChild, child.ID, child.Name); err != nil {
		log.Err(err).Str("func", "*childRepository.CreateChild").Msg("error: statement failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrChildAlreadyExists
		default:
			if isUniqueViolationSQLite(err) {
				return ErrChildAlreadyExists
			}
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return nil
}

// GetChild retrieves one child profile by id, or [ErrChildNotFound].
func (r *childRepository) GetChild(ctx context.Context, id string) (models.ChildProfile, error) {
	log := logger.FromContext(ctx)

	var child models.ChildProfile
	row := r.db.QueryRowContext(ctx, getChild, id)

	if err := row.Scan(&child.ID, &child.Name, &child.IsArchived); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ChildProfile{}, ErrChildNotFound
		}

		log.Err(err).Str("func", "*childRepository.GetChild").Msg("error: scanning error")
		return models.ChildProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return child, nil
}

// RenameChild updates the display name of the profile, returning
// [ErrChildNotFound] if the id does not exist.
func (r *childRepository) RenameChild(ctx context.Context, id, newName string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, renameChild, id, newName)
	if err != nil {
		log.Err(err).Str("func", "*childRepository.RenameChild").Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrChildNotFound
	}

	return nil
}

// ArchiveChild sets the archived flag on the profile. The update matches the
// row whether or not it is already archived, so repeated archiving succeeds.
// Returns [ErrChildNotFound] if the id does not exist.
func (r *childRepository) ArchiveChild(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, archiveChild, id)
	if err != nil {
		log.Err(err).Str("func", "*childRepository.ArchiveChild").Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrChildNotFound
	}

	return nil
}

// ListChildren returns every stored child profile, archived ones included,
// ordered by id.
func (r *childRepository) ListChildren(ctx context.Context) ([]models.ChildProfile, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listChildren)
	if err != nil {
		log.Err(err).Str("func", "*childRepository.ListChildren").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	children := make([]models.ChildProfile, 0)
	for rows.Next() {
		var child models.ChildProfile
		if err := rows.Scan(&child.ID, &child.Name, &child.IsArchived); err != nil {
			log.Err(err).Str("func", "*childRepository.ListChildren").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return children, nil
}
