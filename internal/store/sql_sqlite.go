package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/guardian-alarm/internal/config"
	"github.com/MKhiriev/guardian-alarm/internal/logger"
)

const sqliteDriverName = "sqlite3"

// NewConnectSQLite opens (creating the file if needed) and pings a sqlite3
// database for embedded single-host deployments.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open(sqliteDriverName, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:     conn,
		driver: sqliteDriverName,
		logger: log,
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

// isUniqueViolationSQLite reports whether err is a sqlite3 unique or primary
// key constraint violation. The repositories check it alongside the
// PostgreSQL error code so both backends surface the same sentinel errors.
func isUniqueViolationSQLite(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// bootstrapSQLite applies the schema to a sqlite3 database. It mirrors the
// goose migrations; sqlite needs its own DDL because of the serial id and
// JSONB columns used on PostgreSQL.
func bootstrapSQLite(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			principal TEXT PRIMARY KEY,
			name      TEXT NOT NULL DEFAULT '',
			role      TEXT NOT NULL DEFAULT 'user'
		);`,
		`CREATE TABLE IF NOT EXISTS child_profiles (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS principal_links (
			principal TEXT PRIMARY KEY,
			child_id  TEXT NOT NULL REFERENCES child_profiles (id)
		);`,
		`CREATE TABLE IF NOT EXISTS guardian_pin (
			id   INTEGER PRIMARY KEY CHECK (id = 1),
			hash BLOB NOT NULL,
			salt BLOB NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS alarm_events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			child_profile_id TEXT NOT NULL REFERENCES child_profiles (id),
			acknowledged     BOOLEAN NOT NULL DEFAULT FALSE,
			ts               BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS biometric_records (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			child_id  TEXT NOT NULL REFERENCES child_profiles (id),
			data_type TEXT NOT NULL,
			data      BLOB NOT NULL,
			ts        BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS touch_records (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			child_id TEXT NOT NULL REFERENCES child_profiles (id),
			ts       BIGINT NOT NULL,
			samples  TEXT NOT NULL DEFAULT '[]'
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error bootstrapping sqlite schema: %w", err)
		}
	}

	return nil
}
