package service

import (
	"context"

	"github.com/MKhiriev/guardian-alarm/internal/config"
	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
)

// Services bundles every business-layer service behind one constructor so
// that cmd/server wires a single value into the handlers.
type Services struct {
	SessionService   SessionService
	DirectoryService DirectoryService
	ChildrenService  ChildrenService
	RecordService    RecordService
	PinService       PinService
	AlarmService     AlarmService
	AppInfoService   AppInfoService
}

// NewServices wires all services over the given storages. The access gate
// and the verification grant tracker are shared: role enforcement and the
// verify-then-acknowledge handshake must see the same state everywhere.
func NewServices(ctx context.Context, storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	gate := newAccessGate(storages.ProfileRepository, logger)
	grants := newVerifyGrants()

	alarmService, err := NewAlarmService(
		ctx,
		storages.AlarmRepository,
		storages.LinkRepository,
		storages.ChildRepository,
		gate,
		grants,
		logger,
	)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		SessionService:   NewSessionService(cfg.App, logger),
		DirectoryService: NewDirectoryService(storages.ProfileRepository, storages.LinkRepository, storages.ChildRepository, gate, logger),
		ChildrenService:  NewChildrenService(storages.ChildRepository, gate, logger),
		RecordService:    NewRecordService(storages.RecordRepository, storages.ChildRepository, gate, logger),
		PinService:       NewPinService(storages.PinRepository, cfg.App, gate, grants, logger),
		AlarmService:     alarmService,
		AppInfoService:   appInfoService,
	}, nil
}
