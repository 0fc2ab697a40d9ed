package validators

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
)

// Field name constants for item and sync request validation.
const (
	// FieldUUID targets the client-assigned item identity.
	FieldUUID = "uuid"

	// FieldContentType targets the declared payload type.
	FieldContentType = "content_type"

	// FieldTimestamps targets the optional created_at and updated_at of a
	// submission.
	FieldTimestamps = "timestamps"

	// FieldLimit targets the requested page size of a sync request.
	FieldLimit = "limit"

	// FieldItems targets the number of submissions in a sync request.
	FieldItems = "items"
)

// MaxUUIDLength bounds the client-assigned identity.
const MaxUUIDLength = 255

// Timestamps outside this window cannot be stored by every backend.
var (
	minTimestamp = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

// ItemValidator validates [models.ItemSubmission] and [models.SyncRequest].
//
// Only structure is checked. Payloads are opaque and never inspected.
type ItemValidator struct {
	// maxItems caps the submissions of one sync request. Zero disables
	// the check.
	maxItems int
}

// NewItemValidator constructs an [ItemValidator].
func NewItemValidator(maxItems int) Validator {
	return &ItemValidator{maxItems: maxItems}
}

// Validate dispatches on the dynamic type of obj. Without fields, every
// rule of the type is applied.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ItemSubmission:
		return v.validateSubmission(ctx, value, fields...)
	case *models.ItemSubmission:
		return v.validateSubmission(ctx, *value, fields...)

	case models.SyncRequest:
		return v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		return v.validateSyncRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateSubmission(_ context.Context, s models.ItemSubmission, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUUID, FieldContentType, FieldTimestamps}
	}

	for _, field := range fields {
		switch field {
		case FieldUUID:
			if s.UUID == "" {
				return ErrEmptyUUID
			}
			if len(s.UUID) > MaxUUIDLength {
				return ErrInvalidUUID
			}
		case FieldContentType:
			if s.ContentType == "" {
				return ErrEmptyContentType
			}
		case FieldTimestamps:
			if !inRange(s.CreatedAt) || !inRange(s.UpdatedAt) {
				return ErrInvalidTimestamp
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *ItemValidator) validateSyncRequest(_ context.Context, r models.SyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit, FieldItems}
	}

	for _, field := range fields {
		switch field {
		case FieldLimit:
			if r.Limit < 0 {
				return ErrNegativeLimit
			}
		case FieldItems:
			if v.maxItems > 0 && len(r.Items) > v.maxItems {
				return fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(r.Items), v.maxItems)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func inRange(t *time.Time) bool {
	if t == nil {
		return true
	}
	return !t.Before(minTimestamp) && !t.After(maxTimestamp)
}
