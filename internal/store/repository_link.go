package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
)

// linkRepository is the SQL-backed implementation of [LinkRepository].
// It manages the "principal_links" table.
type linkRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLinkRepository constructs a [LinkRepository] backed by the provided
// database connection and logger.
func NewLinkRepository(db *DB, logger *logger.Logger) LinkRepository {
	logger.Debug().Msg("creating link repository")
	return &linkRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertLink writes the principal's link row, overwriting any existing link.
// A principal has at most one link at any time.
func (r *linkRepository) UpsertLink(ctx context.Context, link models.PrincipalLink) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, upsertLink, link.Principal, link.ChildID); err != nil {
		log.Err(err).Str("func", "*linkRepository.UpsertLink").Msg("error: statement failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteLink removes the principal's link row entirely, returning
// [ErrLinkNotFound] if no row exists.
func (r *linkRepository) DeleteLink(ctx context.Context, principal string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteLink, principal)
	if err != nil {
		log.Err(err).Str("func", "*linkRepository.DeleteLink").Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// GetLinkByPrincipal retrieves the principal's link, or [ErrLinkNotFound].
func (r *linkRepository) GetLinkByPrincipal(ctx context.Context, principal string) (models.PrincipalLink, error) {
	log := logger.FromContext(ctx)

	var link models.PrincipalLink
	row := r.db.QueryRowContext(ctx, getLinkByPrincipal, principal)

	if err := row.Scan(&link.Principal, &link.ChildID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PrincipalLink{}, ErrLinkNotFound
		}

		log.Err(err).Str("func", "*linkRepository.GetLinkByPrincipal").Msg("error: scanning error")
		return models.PrincipalLink{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return link, nil
}
