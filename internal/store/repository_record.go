package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
)

// recordRepository is the SQL-backed implementation of [RecordRepository].
// It manages the "biometric_records" and "touch_records" tables, which keep
// independent auto-increment id spaces.
//
// Touch sample sequences are stored as a JSON document in a single column:
// a record is created and deleted as one unit and samples are never queried
// individually, so a child table would buy nothing.
type recordRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

// AddBiometric appends a biometric record and returns the assigned id.
func (r *recordRepository) AddBiometric(ctx context.Context, record models.BiometricRecord) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, addBiometric, record.ChildID, record.DataType, record.Data, record.Timestamp)
	if err := row.Scan(&id); err != nil {
		log.Err(err).Str("func", "*recordRepository.AddBiometric").Msg("error: statement failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// AddTouch appends a touch record with its whole sample sequence and returns
// the assigned id. An empty sample sequence is stored as an empty JSON array.
func (r *recordRepository) AddTouch(ctx context.Context, record models.TouchRecord) (int64, error) {
	log := logger.FromContext(ctx)

	samples := record.Samples
	if samples == nil {
		samples = []models.TouchSample{}
	}
	payload, err := json.Marshal(samples)
	if err != nil {
		return 0, fmt.Errorf("error marshaling touch samples: %w", err)
	}

	var id int64
	row := r.db.QueryRowContext(ctx, addTouch, record.ChildID, record.RecordTimestamp, payload)
	if err := row.Scan(&id); err != nil {
		log.Err(err).Str("func", "*recordRepository.AddTouch").Msg("error: statement failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// DeleteBiometric removes one biometric record, returning [ErrRecordNotFound]
// if the id is absent from the biometric id space.
func (r *recordRepository) DeleteBiometric(ctx context.Context, recordID int64) error {
	return r.deleteOne(ctx, deleteBiometric, recordID, "*recordRepository.DeleteBiometric")
}

// DeleteTouch removes one touch record, returning [ErrRecordNotFound] if the
// id is absent from the touch id space.
func (r *recordRepository) DeleteTouch(ctx context.Context, recordID int64) error {
	return r.deleteOne(ctx, deleteTouch, recordID, "*recordRepository.DeleteTouch")
}

func (r *recordRepository) deleteOne(ctx context.Context, query string, recordID int64, funcName string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, recordID)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ListBiometricByChild returns the child's biometric records ordered by id.
// Unknown child ids produce an empty slice.
func (r *recordRepository) ListBiometricByChild(ctx context.Context, childID string) ([]models.BiometricRecord, error) {
	return r.scanBiometric(ctx, listBiometricByChild, childID)
}

// ListAllBiometric returns every biometric record across all children.
func (r *recordRepository) ListAllBiometric(ctx context.Context) ([]models.BiometricRecord, error) {
	return r.scanBiometric(ctx, listAllBiometric)
}

func (r *recordRepository) scanBiometric(ctx context.Context, query string, args ...any) ([]models.BiometricRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.scanBiometric").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.BiometricRecord, 0)
	for rows.Next() {
		var record models.BiometricRecord
		if err := rows.Scan(&record.ID, &record.ChildID, &record.DataType, &record.Data, &record.Timestamp); err != nil {
			log.Err(err).Str("func", "*recordRepository.scanBiometric").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// ListTouchByChild returns the child's touch records ordered by id.
// Unknown child ids produce an empty slice.
func (r *recordRepository) ListTouchByChild(ctx context.Context, childID string) ([]models.TouchRecord, error) {
	return r.scanTouch(ctx, listTouchByChild, childID)
}

// ListAllTouch returns every touch record across all children.
func (r *recordRepository) ListAllTouch(ctx context.Context) ([]models.TouchRecord, error) {
	return r.scanTouch(ctx, listAllTouch)
}

func (r *recordRepository) scanTouch(ctx context.Context, query string, args ...any) ([]models.TouchRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.scanTouch").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.TouchRecord, 0)
	for rows.Next() {
		var record models.TouchRecord
		var payload []byte
		if err := rows.Scan(&record.ID, &record.ChildID, &record.RecordTimestamp, &payload); err != nil {
			log.Err(err).Str("func", "*recordRepository.scanTouch").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := json.Unmarshal(payload, &record.Samples); err != nil {
			return nil, fmt.Errorf("error unmarshaling touch samples: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
