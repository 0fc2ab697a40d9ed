package service

import (
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/gate"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

// NewServices wires every service of the server. The sync cursor key is
// derived here, once per process.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	codec, err := crypto.NewSyncTokenCodec(cfg.Sync.TokenSecret, cfg.Sync.TokenSalt, cfg.Sync.KeyIterations)
	if err != nil {
		return nil, fmt.Errorf("create sync token codec: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	syncService := NewSyncService(
		storages.ItemStorage,
		codec,
		gate.New(cfg.Sync.GateWait),
		NewConflictResolver(validators.NewItemValidator(0)),
		cfg.Sync,
		logger,
	)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, crypto.NewPasswordHasher(), cfg.App, logger),
		SyncService:    NewSyncValidationService(cfg.Sync.MaxItems).Wrap(syncService),
		AppInfoService: appInfo,
	}, nil
}
