package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validating.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// SyncValidationService rejects malformed requests before the wrapped
// service takes the account's gate. Individual submissions are not checked
// here; the resolver reports them as invalid items.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

// NewSyncValidationService constructs a validation wrapper that accepts at
// most maxItems submissions per request.
func NewSyncValidationService(maxItems int) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewItemValidator(maxItems),
	}
}

// Sync implements [SyncService].
func (v *SyncValidationService) Sync(ctx context.Context, owner int64, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	if owner <= 0 {
		return models.SyncResponse{}, ErrNoOwner
	}

	if err := v.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("func", "*SyncValidationService.Sync").Int64("owner", owner).Msg("invalid sync request")
		switch {
		case errors.Is(err, validators.ErrNegativeLimit):
			return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrInvalidLimit, err)
		case errors.Is(err, validators.ErrTooManyItems):
			return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrTooManyItems, err)
		default:
			return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}

	return v.inner.Sync(ctx, owner, req)
}

// Wrap implements [SyncServiceWrapper].
func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}
