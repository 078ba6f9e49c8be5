package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
)

// pinRepository is the SQL-backed implementation of [PinRepository].
// It manages the single-row "guardian_pin" table.
type pinRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPinRepository constructs a [PinRepository] backed by the provided
// database connection and logger.
func NewPinRepository(db *DB, logger *logger.Logger) PinRepository {
	logger.Debug().Msg("creating pin repository")
	return &pinRepository{
		db:     db,
		logger: logger,
	}
}

// SetPin writes the salted digest as a single upsert statement. The table
// holds exactly one row, so a concurrent read observes either the previous
// digest or the new one, never an intermediate state.
func (r *pinRepository) SetPin(ctx context.Context, pin models.GuardianPin) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setPin, pin.Hash, pin.Salt); err != nil {
		log.Err(err).Str("func", "*pinRepository.SetPin").Msg("error: statement failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetPin returns the stored digest and salt, or [ErrPinNotSet] when no PIN
// has ever been written.
func (r *pinRepository) GetPin(ctx context.Context) (models.GuardianPin, error) {
	log := logger.FromContext(ctx)

	var pin models.GuardianPin
	row := r.db.QueryRowContext(ctx, getPin)

	if err := row.Scan(&pin.Hash, &pin.Salt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.GuardianPin{}, ErrPinNotSet
		}

		log.Err(err).Str("func", "*pinRepository.GetPin").Msg("error: scanning error")
		return models.GuardianPin{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return pin, nil
}
