package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// itemRepository is the SQL implementation of [ItemRepository]. It runs on
// either the pool or a single transaction, depending on q.
type itemRepository struct {
	q       querier
	dialect Dialect
}

// NewItemRepository constructs an [ItemRepository] that runs every statement
// directly on the pool.
func NewItemRepository(db *DB) ItemRepository {
	return &itemRepository{q: db.DB, dialect: db.dialect}
}

// GetByUUID implements [ItemRepository].
func (r *itemRepository) GetByUUID(ctx context.Context, owner int64, uuid string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetItemQuery(r.dialect, owner, uuid)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanItem(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*itemRepository.GetByUUID").
			Int64("owner", owner).
			Str("uuid", uuid).
			Msg("failed to get item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// Insert implements [ItemRepository].
func (r *itemRepository) Insert(ctx context.Context, item models.Item) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertItemQuery(r.dialect, item)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sequence int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&sequence); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrItemAlreadyExists, err)
		}
		log.Err(err).
			Str("func", "*itemRepository.Insert").
			Int64("owner", item.Owner).
			Str("uuid", item.UUID).
			Msg("failed to insert item")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return sequence, nil
}

// Update implements [ItemRepository].
func (r *itemRepository) Update(ctx context.Context, item models.Item) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(r.dialect, item)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sequence int64
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&sequence)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*itemRepository.Update").
			Int64("owner", item.Owner).
			Str("uuid", item.UUID).
			Msg("failed to update item")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return sequence, nil
}

// ScanAfter implements [ItemRepository].
func (r *itemRepository) ScanAfter(ctx context.Context, owner int64, after int64, limit int) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildScanAfterQuery(r.dialect, owner, after, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*itemRepository.ScanAfter").
			Int64("owner", owner).
			Int64("after", after).
			Msg("failed to execute scan query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, min(limit, 100))
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*itemRepository.ScanAfter").
				Int64("owner", owner).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "*itemRepository.ScanAfter").
			Int64("owner", owner).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.Owner,
		&item.UUID,
		&item.Content,
		&item.ContentType,
		&item.EncItemKey,
		&item.Deleted,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Sequence,
	)
	if err != nil {
		return models.Item{}, err
	}

	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	return item, nil
}
