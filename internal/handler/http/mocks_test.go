package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/service"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
	"github.com/MKhiriev/guardian-alarm/models"
	"github.com/golang-jwt/jwt/v5"
)

// Hand-rolled service mocks shared across the handler tests. A nil function
// field means "succeed with the zero value".

type mockSessionService struct {
	createTokenFn func(ctx context.Context, principal string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockSessionService) CreateToken(ctx context.Context, principal string) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, principal)
	}
	return models.Token{SignedString: "stub-token"}, nil
}

func (m *mockSessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return tokenFor("stub-principal"), nil
}

// tokenFor builds a parsed token carrying the given principal as its subject.
func tokenFor(principal string) models.Token {
	return models.Token{
		RegisteredClaims: jwt.RegisteredClaims{Subject: principal},
		Principal:        principal,
	}
}

type mockDirectoryService struct {
	getCallerProfileFn func(ctx context.Context, caller string) (models.UserProfile, error)
	getProfileFn       func(ctx context.Context, caller, principal string) (models.UserProfile, error)
	saveProfileFn      func(ctx context.Context, caller string, profile models.UserProfile) (models.UserProfile, error)
	getCallerRoleFn    func(ctx context.Context, caller string) (models.Role, error)
	assignRoleFn       func(ctx context.Context, caller, target string, role models.Role) error
	isCallerAdminFn    func(ctx context.Context, caller string) (bool, error)
	linkFn             func(ctx context.Context, caller, principal, childID string) error
	unlinkFn           func(ctx context.Context, caller, principal string) error
	getLinkedChildFn   func(ctx context.Context, caller string) (models.ChildProfile, error)
}

func (m *mockDirectoryService) GetCallerUserProfile(ctx context.Context, caller string) (models.UserProfile, error) {
	if m.getCallerProfileFn != nil {
		return m.getCallerProfileFn(ctx, caller)
	}
	return models.UserProfile{}, nil
}

func (m *mockDirectoryService) GetUserProfile(ctx context.Context, caller, principal string) (models.UserProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, caller, principal)
	}
	return models.UserProfile{}, nil
}

func (m *mockDirectoryService) SaveCallerUserProfile(ctx context.Context, caller string, profile models.UserProfile) (models.UserProfile, error) {
	if m.saveProfileFn != nil {
		return m.saveProfileFn(ctx, caller, profile)
	}
	return profile, nil
}

func (m *mockDirectoryService) GetCallerUserRole(ctx context.Context, caller string) (models.Role, error) {
	if m.getCallerRoleFn != nil {
		return m.getCallerRoleFn(ctx, caller)
	}
	return models.RoleGuest, nil
}

func (m *mockDirectoryService) AssignCallerUserRole(ctx context.Context, caller, target string, role models.Role) error {
	if m.assignRoleFn != nil {
		return m.assignRoleFn(ctx, caller, target, role)
	}
	return nil
}

func (m *mockDirectoryService) IsCallerAdmin(ctx context.Context, caller string) (bool, error) {
	if m.isCallerAdminFn != nil {
		return m.isCallerAdminFn(ctx, caller)
	}
	return false, nil
}

func (m *mockDirectoryService) LinkPrincipalToChild(ctx context.Context, caller, principal, childID string) error {
	if m.linkFn != nil {
		return m.linkFn(ctx, caller, principal, childID)
	}
	return nil
}

func (m *mockDirectoryService) UnlinkPrincipalFromChild(ctx context.Context, caller, principal string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, caller, principal)
	}
	return nil
}

func (m *mockDirectoryService) GetLinkedChildProfile(ctx context.Context, caller string) (models.ChildProfile, error) {
	if m.getLinkedChildFn != nil {
		return m.getLinkedChildFn(ctx, caller)
	}
	return models.ChildProfile{}, nil
}

type mockChildrenService struct {
	createFn func(ctx context.Context, caller string, child models.ChildProfile) (models.ChildProfile, error)
	renameFn func(ctx context.Context, caller, childID, name string) error
	archiveFn func(ctx context.Context, caller, childID string) error
	listFn   func(ctx context.Context, caller string) ([]models.ChildProfile, error)
}

func (m *mockChildrenService) CreateChildProfile(ctx context.Context, caller string, child models.ChildProfile) (models.ChildProfile, error) {
	if m.createFn != nil {
		return m.createFn(ctx, caller, child)
	}
	return child, nil
}

func (m *mockChildrenService) RenameChildProfile(ctx context.Context, caller, childID, name string) error {
	if m.renameFn != nil {
		return m.renameFn(ctx, caller, childID, name)
	}
	return nil
}

func (m *mockChildrenService) ArchiveChildProfile(ctx context.Context, caller, childID string) error {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, caller, childID)
	}
	return nil
}

func (m *mockChildrenService) GetChildProfiles(ctx context.Context, caller string) ([]models.ChildProfile, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caller)
	}
	return nil, nil
}

type mockRecordService struct {
	addBiometricFn func(ctx context.Context, caller string, record models.BiometricRecord) (int64, error)
	addTouchFn     func(ctx context.Context, caller string, record models.TouchRecord) (int64, error)
	deleteBioFn    func(ctx context.Context, caller string, recordID int64) error
	deleteTouchFn  func(ctx context.Context, caller string, recordID int64) error
	listBioFn      func(ctx context.Context, caller, childID string) ([]models.BiometricRecord, error)
	listTouchFn    func(ctx context.Context, caller, childID string) ([]models.TouchRecord, error)
	listUnifiedFn  func(ctx context.Context, caller string) ([]models.RecordListEntry, error)
}

func (m *mockRecordService) AddBiometricRecord(ctx context.Context, caller string, record models.BiometricRecord) (int64, error) {
	if m.addBiometricFn != nil {
		return m.addBiometricFn(ctx, caller, record)
	}
	return 0, nil
}

func (m *mockRecordService) AddTouchRecord(ctx context.Context, caller string, record models.TouchRecord) (int64, error) {
	if m.addTouchFn != nil {
		return m.addTouchFn(ctx, caller, record)
	}
	return 0, nil
}

func (m *mockRecordService) DeleteBiometricRecord(ctx context.Context, caller string, recordID int64) error {
	if m.deleteBioFn != nil {
		return m.deleteBioFn(ctx, caller, recordID)
	}
	return nil
}

func (m *mockRecordService) DeleteTouchRecord(ctx context.Context, caller string, recordID int64) error {
	if m.deleteTouchFn != nil {
		return m.deleteTouchFn(ctx, caller, recordID)
	}
	return nil
}

func (m *mockRecordService) GetBiometricRecordsForChild(ctx context.Context, caller, childID string) ([]models.BiometricRecord, error) {
	if m.listBioFn != nil {
		return m.listBioFn(ctx, caller, childID)
	}
	return nil, nil
}

func (m *mockRecordService) GetTouchRecordsForChild(ctx context.Context, caller, childID string) ([]models.TouchRecord, error) {
	if m.listTouchFn != nil {
		return m.listTouchFn(ctx, caller, childID)
	}
	return nil, nil
}

func (m *mockRecordService) GetUnifiedRecordList(ctx context.Context, caller string) ([]models.RecordListEntry, error) {
	if m.listUnifiedFn != nil {
		return m.listUnifiedFn(ctx, caller)
	}
	return nil, nil
}

type mockPinService struct {
	setFn    func(ctx context.Context, caller, pin string) error
	verifyFn func(ctx context.Context, caller, pin string) (bool, error)
}

func (m *mockPinService) SetGuardianPin(ctx context.Context, caller, pin string) error {
	if m.setFn != nil {
		return m.setFn(ctx, caller, pin)
	}
	return nil
}

func (m *mockPinService) VerifyGuardianPin(ctx context.Context, caller, pin string) (bool, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, caller, pin)
	}
	return false, nil
}

type mockAlarmService struct {
	triggerFn     func(ctx context.Context, caller string) error
	acknowledgeFn func(ctx context.Context, caller string) error
	isActiveFn    func(ctx context.Context) (bool, error)
	listEventsFn  func(ctx context.Context, caller string) ([]models.AlarmEvent, error)
}

func (m *mockAlarmService) TriggerAlarm(ctx context.Context, caller string) error {
	if m.triggerFn != nil {
		return m.triggerFn(ctx, caller)
	}
	return nil
}

func (m *mockAlarmService) AcknowledgeAlarm(ctx context.Context, caller string) error {
	if m.acknowledgeFn != nil {
		return m.acknowledgeFn(ctx, caller)
	}
	return nil
}

func (m *mockAlarmService) IsAlarmActive(ctx context.Context) (bool, error) {
	if m.isActiveFn != nil {
		return m.isActiveFn(ctx)
	}
	return false, nil
}

func (m *mockAlarmService) GetAlarmEvents(ctx context.Context, caller string) ([]models.AlarmEvent, error) {
	if m.listEventsFn != nil {
		return m.listEventsFn(ctx, caller)
	}
	return nil, nil
}

// newTestHandler builds a Handler over fully stubbed services.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(
		&service.Services{
			SessionService:   &mockSessionService{},
			DirectoryService: &mockDirectoryService{},
			ChildrenService:  &mockChildrenService{},
			RecordService:    &mockRecordService{},
			PinService:       &mockPinService{},
			AlarmService:     &mockAlarmService{},
			AppInfoService:   &mockAppInfoService{version: "test-version"},
		},
		logger.Nop(),
	)
}

// authedRequest builds a request whose context already carries the caller
// principal, bypassing the auth middleware for direct handler tests.
func authedRequest(method, target, principal string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), utils.PrincipalCtxKey, principal)
	return req.WithContext(ctx)
}
