// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

const (
	defaultTxRetries   = 3
	defaultTxRetryBase = 50 * time.Millisecond
)

// itemStorage is the default implementation of [ItemStorage].
//
// Single statements are delegated to a pool-bound [ItemRepository]; batches
// run through InTx, which binds a fresh repository to each transaction.
type itemStorage struct {
	ItemRepository

	db *DB

	// retries and retryBase configure the exponential backoff applied when
	// a transaction fails with a retryable error.
	retries   uint64
	retryBase time.Duration

	logger *logger.Logger
}

// NewItemStorage constructs an [ItemStorage] on top of db.
func NewItemStorage(db *DB, logger *logger.Logger) ItemStorage {
	logger.Debug().Str("dialect", db.dialect.Name).Msg("creating item storage")

	return &itemStorage{
		ItemRepository: NewItemRepository(db),
		db:             db,
		retries:        defaultTxRetries,
		retryBase:      defaultTxRetryBase,
		logger:         logger,
	}
}

// InTx implements [ItemStorage].
//
// Transient failures reported by the dialect's [ErrorClassificator] rerun
// the whole transaction with exponential backoff. Any other error is
// returned as is after rollback.
func (s *itemStorage) InTx(ctx context.Context, owner int64, fn func(ctx context.Context, repo ItemRepository) error) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(s.retries, retry.NewExponential(s.retryBase))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		err := s.runTx(ctx, owner, fn)
		if err != nil && s.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().
				Err(err).
				Str("func", "*itemStorage.InTx").
				Int64("owner", owner).
				Int("attempt", attempt).
				Msg("transient database failure, retrying transaction")
			return retry.RetryableError(err)
		}

		return err
	})
}

func (s *itemStorage) runTx(ctx context.Context, owner int64, fn func(ctx context.Context, repo ItemRepository) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*itemStorage.runTx").
			Int64("owner", owner).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if lock := s.db.dialect.ownerLock; lock != "" {
		if _, err = tx.ExecContext(ctx, lock, owner); err != nil {
			log.Err(err).
				Str("func", "*itemStorage.runTx").
				Int64("owner", owner).
				Msg("failed to lock owner")
			return fmt.Errorf("%w: %w", ErrLockingOwner, err)
		}
	}

	if err = fn(ctx, &itemRepository{q: tx, dialect: s.db.dialect}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "*itemStorage.runTx").
			Int64("owner", owner).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
