package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrChildAlreadyExists is returned when creating a child profile whose
	// id is already taken. The pre-existing row is left unchanged.
	ErrChildAlreadyExists = errors.New("child profile already exists")

	// ErrChildNotFound is returned when an operation references a child
	// profile id that is not present in the database.
	ErrChildNotFound = errors.New("child profile was not found")

	// ErrProfileNotFound is returned when a caller principal has no stored
	// user profile.
	ErrProfileNotFound = errors.New("user profile was not found")

	// ErrLinkNotFound is returned when a principal has no link row, either on
	// lookup or on unlink.
	ErrLinkNotFound = errors.New("principal link was not found")

	// ErrRecordNotFound is returned when a delete or lookup targets a record
	// id absent from the addressed record kind's id space.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrPinNotSet is returned when the guardian PIN row has never been
	// written. Callers translate this into a plain "verification failed" so
	// vault configuration state is not leaked.
	ErrPinNotSet = errors.New("guardian pin is not set")

	// ErrNoAlarmEvents is returned when the alarm event log is empty.
	ErrNoAlarmEvents = errors.New("no alarm events recorded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
