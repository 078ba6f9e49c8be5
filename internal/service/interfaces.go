package service

import (
	"context"

	"github.com/MKhiriev/guardian-alarm/models"
)

// SessionService issues and parses the bearer tokens that carry the caller
// principal across the HTTP boundary.
type SessionService interface {
	CreateToken(ctx context.Context, principal string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DirectoryService answers "who is calling, with what role" and manages
// user profiles and principal-to-child links.
type DirectoryService interface {
	GetCallerUserProfile(ctx context.Context, caller string) (models.UserProfile, error)
	GetUserProfile(ctx context.Context, caller, principal string) (models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, caller string, profile models.UserProfile) (models.UserProfile, error)
	GetCallerUserRole(ctx context.Context, caller string) (models.Role, error)
	AssignCallerUserRole(ctx context.Context, caller, target string, role models.Role) error
	IsCallerAdmin(ctx context.Context, caller string) (bool, error)

	LinkPrincipalToChild(ctx context.Context, caller, principal, childID string) error
	UnlinkPrincipalFromChild(ctx context.Context, caller, principal string) error
	GetLinkedChildProfile(ctx context.Context, caller string) (models.ChildProfile, error)
}

// ChildrenService manages the guardian-owned child profile store.
type ChildrenService interface {
	CreateChildProfile(ctx context.Context, caller string, child models.ChildProfile) (models.ChildProfile, error)
	RenameChildProfile(ctx context.Context, caller, childID, name string) error
	ArchiveChildProfile(ctx context.Context, caller, childID string) error
	GetChildProfiles(ctx context.Context, caller string) ([]models.ChildProfile, error)
}

// RecordService manages biometric and touch-sensing records and the unified
// time-ordered projection over both kinds.
type RecordService interface {
	AddBiometricRecord(ctx context.Context, caller string, record models.BiometricRecord) (int64, error)
	DeleteBiometricRecord(ctx context.Context, caller string, recordID int64) error
	GetBiometricRecordsForChild(ctx context.Context, caller, childID string) ([]models.BiometricRecord, error)

	AddTouchRecord(ctx context.Context, caller string, record models.TouchRecord) (int64, error)
	DeleteTouchRecord(ctx context.Context, caller string, recordID int64) error
	GetTouchRecordsForChild(ctx context.Context, caller, childID string) ([]models.TouchRecord, error)

	GetUnifiedRecordList(ctx context.Context, caller string) ([]models.RecordListEntry, error)
}

// PinService owns the guardian PIN lifecycle. Verification is not privileged;
// only its consequence, acknowledging the alarm, is.
type PinService interface {
	SetGuardianPin(ctx context.Context, caller, pin string) error
	VerifyGuardianPin(ctx context.Context, caller, pin string) (bool, error)
}

// AlarmService is the single global alarm state machine.
type AlarmService interface {
	TriggerAlarm(ctx context.Context, caller string) error
	AcknowledgeAlarm(ctx context.Context, caller string) error
	IsAlarmActive(ctx context.Context) (bool, error)
	GetAlarmEvents(ctx context.Context, caller string) ([]models.AlarmEvent, error)
}

// AppInfoService exposes build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
