package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/models"
)

// alarmRepository is the SQL-backed implementation of [AlarmRepository].
// It manages the append-only "alarm_events" table. Rows are inserted on
// trigger and updated exactly once on acknowledge; nothing is ever deleted.
type alarmRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAlarmRepository constructs an [AlarmRepository] backed by the provided
// database connection and logger.
func NewAlarmRepository(db *DB, logger *logger.Logger) AlarmRepository {
	logger.Debug().Msg("creating alarm repository")
	return &alarmRepository{
		db:     db,
		logger: logger,
	}
}

// AppendEvent inserts an unacknowledged event and returns it with the
// server-assigned id.
func (r *alarmRepository) AppendEvent(ctx context.Context, childProfileID string, timestamp int64) (models.AlarmEvent, error) {
	log := logger.FromContext(ctx)

	event := models.AlarmEvent{
		ChildProfileID: childProfileID,
		Acknowledged:   false,
		Timestamp:      timestamp,
	}

	// A trigger must not be lost to a dropped connection or a deadlock
	// rollback, so transient failures are reissued a bounded number of times.
	var insertErr error
	for attempt := 0; attempt <= retryAttempts; attempt++ {
		row := r.db.QueryRowContext(ctx, appendAlarmEvent, childProfileID, timestamp)
		insertErr = row.Scan(&event.ID)
		if insertErr == nil {
			return event, nil
		}

		if !r.db.retryable(insertErr) {
			break
		}

		log.Warn().Err(insertErr).Str("func", "*alarmRepository.AppendEvent").
			Int("attempt", attempt+1).Msg("transient DB error, retrying")
	}

	log.Err(insertErr).Str("func", "*alarmRepository.AppendEvent").Msg("error: statement failed")
	return models.AlarmEvent{}, fmt.Errorf("%w: %w", ErrExecutingStatement, insertErr)
}

// LatestEvent returns the most recently appended event, or [ErrNoAlarmEvents]
// when the log is empty. The alarm engine derives its active flag from this
// row at startup.
func (r *alarmRepository) LatestEvent(ctx context.Context) (models.AlarmEvent, error) {
	log := logger.FromContext(ctx)

	var event models.AlarmEvent
	row := r.db.QueryRowContext(ctx, latestAlarmEvent)

	if err := row.Scan(&event.ID, &event.ChildProfileID, &event.Acknowledged, &event.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AlarmEvent{}, ErrNoAlarmEvents
		}

		log.Err(err).Str("func", "*alarmRepository.LatestEvent").Msg("error: scanning error")
		return models.AlarmEvent{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return event, nil
}

// AcknowledgeLatest marks the newest unacknowledged event as acknowledged,
// returning [ErrNoAlarmEvents] when nothing is pending.
func (r *alarmRepository) AcknowledgeLatest(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var (
		result sql.Result
		err    error
	)
	for attempt := 0; attempt <= retryAttempts; attempt++ {
		result, err = r.db.ExecContext(ctx, acknowledgeLatestAlarmEvent)
		if err == nil || !r.db.retryable(err) {
			break
		}

		log.Warn().Err(err).Str("func", "*alarmRepository.AcknowledgeLatest").
			Int("attempt", attempt+1).Msg("transient DB error, retrying")
	}
	if err != nil {
		log.Err(err).Str("func", "*alarmRepository.AcknowledgeLatest").Msg("error: statement failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoAlarmEvents
	}

	return nil
}

// ListEvents returns the full event history in insertion order.
func (r *alarmRepository) ListEvents(ctx context.Context) ([]models.AlarmEvent, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAlarmEvents)
	if err != nil {
		log.Err(err).Str("func", "*alarmRepository.ListEvents").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.AlarmEvent, 0)
	for rows.Next() {
		var event models.AlarmEvent
		if err := rows.Scan(&event.ID, &event.ChildProfileID, &event.Acknowledged, &event.Timestamp); err != nil {
			log.Err(err).Str("func", "*alarmRepository.ListEvents").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
