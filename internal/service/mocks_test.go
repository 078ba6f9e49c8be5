package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/models"
)

// Hand-rolled repository mocks shared across the service tests. A nil
// function field means "succeed with the zero value".

var errStorage = errors.New("storage error")

type mockProfileRepository struct {
	getProfileFn  func(ctx context.Context, principal string) (models.UserProfile, error)
	saveProfileFn func(ctx context.Context, profile models.UserProfile) error
	assignRoleFn  func(ctx context.Context, principal string, role models.Role) error
	countAdminsFn func(ctx context.Context) (int, error)
}

func (m *mockProfileRepository) GetProfile(ctx context.Context, principal string) (models.UserProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, principal)
	}
	return models.UserProfile{}, nil
}

func (m *mockProfileRepository) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	if m.saveProfileFn != nil {
		return m.saveProfileFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepository) AssignRole(ctx context.Context, principal string, role models.Role) error {
	if m.assignRoleFn != nil {
		return m.assignRoleFn(ctx, principal, role)
	}
	return nil
}

func (m *mockProfileRepository) CountAdmins(ctx context.Context) (int, error) {
	if m.countAdminsFn != nil {
		return m.countAdminsFn(ctx)
	}
	return 0, nil
}

// adminProfiles returns a profile repository that resolves the given
// principals to admin profiles and everyone else to a plain user profile.
func adminProfiles(admins ...string) *mockProfileRepository {
	adminSet := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		adminSet[a] = struct{}{}
	}
	return &mockProfileRepository{
		getProfileFn: func(_ context.Context, principal string) (models.UserProfile, error) {
			role := models.RoleUser
			if _, ok := adminSet[principal]; ok {
				role = models.RoleAdmin
			}
			return models.UserProfile{Principal: principal, Name: principal, Role: role}, nil
		},
	}
}

type mockChildRepository struct {
	createChildFn  func(ctx context.Context, child models.ChildProfile) error
	getChildFn     func(ctx context.Context, id string) (models.ChildProfile, error)
	renameChildFn  func(ctx context.Context, id, newName string) error
	archiveChildFn func(ctx context.Context, id string) error
	listChildrenFn func(ctx context.Context) ([]models.ChildProfile, error)
}

func (m *mockChildRepository) CreateChild(ctx context.Context, child models.ChildProfile) error {
	if m.createChildFn != nil {
		return m.createChildFn(ctx, child)
	}
	return nil
}

func (m *mockChildRepository) GetChild(ctx context.Context, id string) (models.ChildProfile, error) {
	if m.getChildFn != nil {
		return m.getChildFn(ctx, id)
	}
	return models.ChildProfile{ID: id}, nil
}

func (m *mockChildRepository) RenameChild(ctx context.Context, id, newName string) error {
	if m.renameChildFn != nil {
		return m.renameChildFn(ctx, id, newName)
	}
	return nil
}

func (m *mockChildRepository) ArchiveChild(ctx context.Context, id string) error {
	if m.archiveChildFn != nil {
		return m.archiveChildFn(ctx, id)
	}
	return nil
}

func (m *mockChildRepository) ListChildren(ctx context.Context) ([]models.ChildProfile, error) {
	if m.listChildrenFn != nil {
		return m.listChildrenFn(ctx)
	}
	return nil, nil
}

type mockLinkRepository struct {
	upsertLinkFn         func(ctx context.Context, link models.PrincipalLink) error
	deleteLinkFn         func(ctx context.Context, principal string) error
	getLinkByPrincipalFn func(ctx context.Context, principal string) (models.PrincipalLink, error)
}

func (m *mockLinkRepository) UpsertLink(ctx context.Context, link models.PrincipalLink) error {
	if m.upsertLinkFn != nil {
		return m.upsertLinkFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) DeleteLink(ctx context.Context, principal string) error {
	if m.deleteLinkFn != nil {
		return m.deleteLinkFn(ctx, principal)
	}
	return nil
}

func (m *mockLinkRepository) GetLinkByPrincipal(ctx context.Context, principal string) (models.PrincipalLink, error) {
	if m.getLinkByPrincipalFn != nil {
		return m.getLinkByPrincipalFn(ctx, principal)
	}
	return models.PrincipalLink{}, nil
}

type mockRecordRepository struct {
	addBiometricFn         func(ctx context.Context, record models.BiometricRecord) (int64, error)
	addTouchFn             func(ctx context.Context, record models.TouchRecord) (int64, error)
	deleteBiometricFn      func(ctx context.Context, recordID int64) error
	deleteTouchFn          func(ctx context.Context, recordID int64) error
	listBiometricByChildFn func(ctx context.Context, childID string) ([]models.BiometricRecord, error)
	listTouchByChildFn     func(ctx context.Context, childID string) ([]models.TouchRecord, error)
	listAllBiometricFn     func(ctx context.Context) ([]models.BiometricRecord, error)
	listAllTouchFn         func(ctx context.Context) ([]models.TouchRecord, error)
}

func (m *mockRecordRepository) AddBiometric(ctx context.Context, record models.BiometricRecord) (int64, error) {
	if m.addBiometricFn != nil {
		return m.addBiometricFn(ctx, record)
	}
	return 0, nil
}

func (m *mockRecordRepository) AddTouch(ctx context.Context, record models.TouchRecord) (int64, error) {
	if m.addTouchFn != nil {
		return m.addTouchFn(ctx, record)
	}
	return 0, nil
}

func (m *mockRecordRepository) DeleteBiometric(ctx context.Context, recordID int64) error {
	if m.deleteBiometricFn != nil {
		return m.deleteBiometricFn(ctx, recordID)
	}
	return nil
}

func (m *mockRecordRepository) DeleteTouch(ctx context.Context, recordID int64) error {
	if m.deleteTouchFn != nil {
		return m.deleteTouchFn(ctx, recordID)
	}
	return nil
}

func (m *mockRecordRepository) ListBiometricByChild(ctx context.Context, childID string) ([]models.BiometricRecord, error) {
	if m.listBiometricByChildFn != nil {
		return m.listBiometricByChildFn(ctx, childID)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListTouchByChild(ctx context.Context, childID string) ([]models.TouchRecord, error) {
	if m.listTouchByChildFn != nil {
		return m.listTouchByChildFn(ctx, childID)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListAllBiometric(ctx context.Context) ([]models.BiometricRecord, error) {
	if m.listAllBiometricFn != nil {
		return m.listAllBiometricFn(ctx)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListAllTouch(ctx context.Context) ([]models.TouchRecord, error) {
	if m.listAllTouchFn != nil {
		return m.listAllTouchFn(ctx)
	}
	return nil, nil
}

type mockPinRepository struct {
	setPinFn func(ctx context.Context, pin models.GuardianPin) error
	getPinFn func(ctx context.Context) (models.GuardianPin, error)
}

func (m *mockPinRepository) SetPin(ctx context.Context, pin models.GuardianPin) error {
	if m.setPinFn != nil {
		return m.setPinFn(ctx, pin)
	}
	return nil
}

func (m *mockPinRepository) GetPin(ctx context.Context) (models.GuardianPin, error) {
	if m.getPinFn != nil {
		return m.getPinFn(ctx)
	}
	return models.GuardianPin{}, nil
}

type mockAlarmRepository struct {
	appendEventFn       func(ctx context.Context, childProfileID string, timestamp int64) (models.AlarmEvent, error)
	latestEventFn       func(ctx context.Context) (models.AlarmEvent, error)
	acknowledgeLatestFn func(ctx context.Context) error
	listEventsFn        func(ctx context.Context) ([]models.AlarmEvent, error)
}

func (m *mockAlarmRepository) AppendEvent(ctx context.Context, childProfileID string, timestamp int64) (models.AlarmEvent, error) {
	if m.appendEventFn != nil {
		return m.appendEventFn(ctx, childProfileID, timestamp)
	}
	return models.AlarmEvent{ChildProfileID: childProfileID, Timestamp: timestamp}, nil
}

func (m *mockAlarmRepository) LatestEvent(ctx context.Context) (models.AlarmEvent, error) {
	if m.latestEventFn != nil {
		return m.latestEventFn(ctx)
	}
	return models.AlarmEvent{}, store.ErrNoAlarmEvents
}

func (m *mockAlarmRepository) AcknowledgeLatest(ctx context.Context) error {
	if m.acknowledgeLatestFn != nil {
		return m.acknowledgeLatestFn(ctx)
	}
	return nil
}

func (m *mockAlarmRepository) ListEvents(ctx context.Context) ([]models.AlarmEvent, error) {
	if m.listEventsFn != nil {
		return m.listEventsFn(ctx)
	}
	return nil, nil
}
