package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/gate"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// syncService is the sync orchestrator: it ties the per-account gate, the
// cursor codec, the conflict resolver and the item store into one round
// trip.
type syncService struct {
	gate     *gate.Gate
	codec    crypto.SyncTokenCodec
	resolver ConflictResolver
	storage  store.ItemStorage

	// maxLimit is both the default and the upper bound of the page size.
	maxLimit int

	logger *logger.Logger
}

// NewSyncService constructs the orchestrator from its collaborators.
func NewSyncService(
	storage store.ItemStorage,
	codec crypto.SyncTokenCodec,
	g *gate.Gate,
	resolver ConflictResolver,
	cfg config.Sync,
	logger *logger.Logger,
) SyncService {
	return &syncService{
		gate:     g,
		codec:    codec,
		resolver: resolver,
		storage:  storage,
		maxLimit: cfg.MaxLimit,
		logger:   logger,
	}
}

// Sync implements [SyncService].
//
// The account's gate is held for the whole round trip. The cursor is
// checked before anything is written; resolution, the retrieval scan and
// minting of the new cursor share one transaction, so a failure anywhere
// leaves no partial writes and returns no token.
func (s *syncService) Sync(ctx context.Context, owner int64, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	release, err := s.gate.Acquire(ctx, owner)
	if err != nil {
		log.Warn().Err(err).Str("func", "*syncService.Sync").Int64("owner", owner).Msg("sync gate not acquired")
		return models.SyncResponse{}, err
	}
	defer release()

	boundary, err := s.codec.Validate(req.SyncToken, owner)
	if err != nil {
		log.Warn().Err(err).Str("func", "*syncService.Sync").Int64("owner", owner).Msg("rejected sync token")
		return models.SyncResponse{}, err
	}

	limit, err := s.pageSize(req.Limit)
	if err != nil {
		return models.SyncResponse{}, err
	}

	var resp models.SyncResponse
	err = s.storage.InTx(ctx, owner, func(ctx context.Context, repo store.ItemRepository) error {
		saved, unsaved, err := s.resolver.Resolve(ctx, repo, owner, req.Items)
		if err != nil {
			return err
		}

		// one extra row tells whether another page follows
		retrieved, err := repo.ScanAfter(ctx, owner, boundary, limit+1)
		if err != nil {
			return fmt.Errorf("scan items: %w", err)
		}

		hasMore := len(retrieved) > limit
		if hasMore {
			retrieved = retrieved[:limit]
		}

		next := boundary
		if len(retrieved) > 0 {
			next = retrieved[len(retrieved)-1].Sequence
		}

		token, err := s.codec.Mint(owner, next)
		if err != nil {
			return fmt.Errorf("mint sync token: %w", err)
		}

		resp = models.SyncResponse{
			RetrievedItems: retrieved,
			SavedItems:     saved,
			UnsavedItems:   unsaved,
			SyncToken:      token,
			HasMore:        hasMore,
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*syncService.Sync").Int64("owner", owner).Msg("sync transaction failed")
		return models.SyncResponse{}, err
	}

	log.Debug().
		Str("func", "*syncService.Sync").
		Int64("owner", owner).
		Int("retrieved", len(resp.RetrievedItems)).
		Int("saved", len(resp.SavedItems)).
		Int("unsaved", len(resp.UnsavedItems)).
		Bool("has_more", resp.HasMore).
		Msg("sync completed")

	return resp, nil
}

// pageSize applies the limit policy: zero selects the server maximum,
// larger values are clamped to it and negative values are rejected.
func (s *syncService) pageSize(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	case limit == 0, limit > s.maxLimit:
		return s.maxLimit, nil
	default:
		return limit, nil
	}
}
