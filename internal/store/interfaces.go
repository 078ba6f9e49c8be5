package store

import (
	"context"

	"github.com/MKhiriev/guardian-alarm/models"
)

// ProfileRepository persists caller principals' user profiles.
type ProfileRepository interface {
	// GetProfile returns the profile stored for principal, or
	// [ErrProfileNotFound] if the principal has never registered.
	GetProfile(ctx context.Context, principal string) (models.UserProfile, error)

	// SaveProfile creates or overwrites the profile row for
	// profile.Principal. Profiles are never deleted.
	SaveProfile(ctx context.Context, profile models.UserProfile) error

	// AssignRole overwrites the role of the target principal's profile.
	// Returns [ErrProfileNotFound] if the target has no profile.
	AssignRole(ctx context.Context, principal string, role models.Role) error

	// CountAdmins returns the number of stored profiles holding the admin
	// role.
	CountAdmins(ctx context.Context) (int, error)
}

// ChildRepository persists guardian-managed child profiles.
type ChildRepository interface {
	// CreateChild inserts a new child profile. Returns
	// [ErrChildAlreadyExists] when the id is taken; the existing row is not
	// touched.
	CreateChild(ctx context.Context, child models.ChildProfile) error

	// GetChild returns the child profile with the given id, or
	// [ErrChildNotFound].
	GetChild(ctx context.Context, id string) (models.ChildProfile, error)

	// RenameChild updates the display name. Returns [ErrChildNotFound] if the
	// id is absent.
	RenameChild(ctx context.Context, id, newName string) error

	// ArchiveChild sets the archived flag. Archiving an already-archived
	// profile succeeds; rows are never deleted.
	ArchiveChild(ctx context.Context, id string) error

	// ListChildren returns every child profile, archived ones included,
	// ordered by id.
	ListChildren(ctx context.Context) ([]models.ChildProfile, error)
}

// LinkRepository persists the principal-to-child link table.
type LinkRepository interface {
	// UpsertLink creates the link row for link.Principal or overwrites the
	// existing one.
	UpsertLink(ctx context.Context, link models.PrincipalLink) error

	// DeleteLink removes the principal's link row. Returns [ErrLinkNotFound]
	// if no row exists.
	DeleteLink(ctx context.Context, principal string) error

	// GetLinkByPrincipal returns the principal's link, or [ErrLinkNotFound].
	GetLinkByPrincipal(ctx context.Context, principal string) (models.PrincipalLink, error)
}

// RecordRepository persists biometric and touch-sensing records. The two
// kinds keep independent id spaces.
type RecordRepository interface {
	// AddBiometric appends a biometric record and returns the assigned id.
	AddBiometric(ctx context.Context, record models.BiometricRecord) (int64, error)

	// AddTouch appends a touch record (the whole captured sample sequence as
	// one unit) and returns the assigned id.
	AddTouch(ctx context.Context, record models.TouchRecord) (int64, error)

	// DeleteBiometric removes one biometric record. Returns
	// [ErrRecordNotFound] if the id is absent.
	DeleteBiometric(ctx context.Context, recordID int64) error

	// DeleteTouch removes one touch record. Returns [ErrRecordNotFound] if
	// the id is absent.
	DeleteTouch(ctx context.Context, recordID int64) error

	// ListBiometricByChild returns the child's biometric records ordered by
	// id. Unknown child ids yield an empty slice, never an error.
	ListBiometricByChild(ctx context.Context, childID string) ([]models.BiometricRecord, error)

	// ListTouchByChild returns the child's touch records ordered by id.
	// Unknown child ids yield an empty slice, never an error.
	ListTouchByChild(ctx context.Context, childID string) ([]models.TouchRecord, error)

	// ListAllBiometric returns every biometric record across all children.
	ListAllBiometric(ctx context.Context) ([]models.BiometricRecord, error)

	// ListAllTouch returns every touch record across all children.
	ListAllTouch(ctx context.Context) ([]models.TouchRecord, error)
}

// PinRepository persists the single guardian PIN row.
type PinRepository interface {
	// SetPin writes the salted digest, overwriting any prior row in one
	// statement so a concurrent read sees either the old or the new PIN,
	// never neither.
	SetPin(ctx context.Context, pin models.GuardianPin) error

	// GetPin returns the stored digest and salt, or [ErrPinNotSet].
	GetPin(ctx context.Context) (models.GuardianPin, error)
}

// AlarmRepository persists the append-only alarm event log.
type AlarmRepository interface {
	// AppendEvent appends an unacknowledged event and returns it with the
	// server-assigned id.
	AppendEvent(ctx context.Context, childProfileID string, timestamp int64) (models.AlarmEvent, error)

	// LatestEvent returns the most recent event, or [ErrNoAlarmEvents] when
	// the log is empty.
	LatestEvent(ctx context.Context) (models.AlarmEvent, error)

	// AcknowledgeLatest marks the newest unacknowledged event as
	// acknowledged. Returns [ErrNoAlarmEvents] when nothing is pending.
	AcknowledgeLatest(ctx context.Context) error

	// ListEvents returns the full event history in insertion order
	// (timestamp ascending).
	ListEvents(ctx context.Context) ([]models.AlarmEvent, error)
}
