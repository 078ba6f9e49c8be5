package store

import (
	"database/sql"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/migrations"
)

// DB wraps the shared *sql.DB handle together with the driver name and an
// error classificator for the active backend.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// retryAttempts bounds how many times a failed statement is reissued after
// a transient failure before the error is surfaced.
const retryAttempts = 2

// retryable reports whether the active backend classifies err as transient.
// Backends without a classificator (sqlite3) treat every error as final.
func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}

	return db.errorClassificator.Classify(err) == Retryable
}

// Migrate brings the database schema up to date. PostgreSQL deployments run
// the embedded goose migrations; sqlite3 deployments apply the equivalent
// bootstrap schema directly because the migration files use PostgreSQL
// serial and JSONB types.
func (db *DB) Migrate() error {
	if db.driver == sqliteDriverName {
		return bootstrapSQLite(db.DB)
	}

	return migrations.Migrate(db.DB)
}
