// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// conflictResolver is the default [ConflictResolver].
//
// A submission is accepted when no item with its uuid exists yet, or when
// its updated_at equals the stored one, meaning the client edited the latest
// version. Anything else is a stale write and is reported with the stored
// item attached.
type conflictResolver struct {
	validator validators.Validator

	// now is the clock used to stamp accepted writes.
	now func() time.Time
}

// NewConflictResolver constructs a [ConflictResolver] that validates every
// submission with validator before looking it up.
func NewConflictResolver(validator validators.Validator) ConflictResolver {
	return &conflictResolver{
		validator: validator,
		now:       time.Now,
	}
}

// Resolve implements [ConflictResolver]. Submissions are processed in
// order, so a uuid repeated in one batch sees the write of its predecessor.
// Only store failures abort the batch.
func (r *conflictResolver) Resolve(
	ctx context.Context,
	repo store.ItemRepository,
	owner int64,
	submissions []models.ItemSubmission,
) ([]models.Item, []models.Conflict, error) {
	log := logger.FromContext(ctx)

	saved := make([]models.Item, 0, len(submissions))
	unsaved := make([]models.Conflict, 0)

	for i := range submissions {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		submission := submissions[i]

		if err := r.validator.Validate(ctx, submission); err != nil {
			log.Debug().
				Str("func", "*conflictResolver.Resolve").
				Int64("owner", owner).
				Str("uuid", submission.UUID).
				Str("reason", err.Error()).
				Msg("skipping invalid submission")
			unsaved = append(unsaved, models.Conflict{
				Type:        models.InvalidItem,
				UnsavedItem: &submission,
				Error:       err.Error(),
			})
			continue
		}

		stored, err := repo.GetByUUID(ctx, owner, submission.UUID)
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			item, insertErr := r.insert(ctx, repo, owner, submission)
			if insertErr != nil {
				return nil, nil, insertErr
			}
			saved = append(saved, item)

		case err != nil:
			return nil, nil, fmt.Errorf("lookup item %q: %w", submission.UUID, err)

		case submission.UpdatedAt != nil && submission.UpdatedAt.Equal(stored.UpdatedAt):
			item, updateErr := r.update(ctx, repo, stored, submission)
			if updateErr != nil {
				return nil, nil, updateErr
			}
			saved = append(saved, item)

		default:
			log.Debug().
				Str("func", "*conflictResolver.Resolve").
				Int64("owner", owner).
				Str("uuid", submission.UUID).
				Msg("stale submission, reporting conflict")
			unsaved = append(unsaved, models.Conflict{
				Type:       models.SyncConflict,
				ServerItem: &stored,
			})
		}
	}

	return saved, unsaved, nil
}

func (r *conflictResolver) insert(ctx context.Context, repo store.ItemRepository, owner int64, s models.ItemSubmission) (models.Item, error) {
	item := s.ToItem(owner)
	item.UpdatedAt = r.stamp(time.Time{})
	item.CreatedAt = item.UpdatedAt
	if s.CreatedAt != nil {
		item.CreatedAt = normalize(*s.CreatedAt)
	}

	sequence, err := repo.Insert(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("insert item %q: %w", s.UUID, err)
	}
	item.Sequence = sequence

	return item, nil
}

func (r *conflictResolver) update(ctx context.Context, repo store.ItemRepository, stored models.Item, s models.ItemSubmission) (models.Item, error) {
	item := s.ToItem(stored.Owner)
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = r.stamp(stored.UpdatedAt)

	sequence, err := repo.Update(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("update item %q: %w", s.UUID, err)
	}
	item.Sequence = sequence

	return item, nil
}

// stamp returns the updated_at for a write replacing a version stamped
// previous. It is always strictly later than previous, so a client holding
// the replaced version can never match the new one.
func (r *conflictResolver) stamp(previous time.Time) time.Time {
	now := normalize(r.now())
	if !now.After(previous) {
		now = previous.Add(time.Millisecond)
	}
	return now
}

// normalize converts t to the precision that survives JSON and every
// storage backend unchanged.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
