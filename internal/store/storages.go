package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/guardian-alarm/internal/config"
	"github.com/MKhiriev/guardian-alarm/internal/logger"
)

// Storages bundles every repository backing the service layer.
type Storages struct {
	ProfileRepository ProfileRepository
	ChildRepository   ChildRepository
	LinkRepository    LinkRepository
	RecordRepository  RecordRepository
	PinRepository     PinRepository
	AlarmRepository   AlarmRepository
}

// NewStorages connects to the configured database backend, applies the
// schema, and wires all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case sqliteDriverName:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		ProfileRepository: NewProfileRepository(db, log),
		ChildRepository:   NewChildRepository(db, log),
		LinkRepository:    NewLinkRepository(db, log),
		RecordRepository:  NewRecordRepository(db, log),
		PinRepository:     NewPinRepository(db, log),
		AlarmRepository:   NewAlarmRepository(db, log),
	}, nil
}
