package service

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// ─────────────────────────────────────────────
// Fake: store.ItemStorage
// ─────────────────────────────────────────────

type itemKey struct {
	owner int64
	uuid  string
}

// memItemStorage is an in-memory store.ItemStorage. InTx is serialized and
// restores a snapshot when fn fails, which is all the sync engine relies on.
type memItemStorage struct {
	mu       sync.Mutex
	items    map[itemKey]models.Item
	sequence int64

	// failScanWith, when set, is returned by ScanAfter inside transactions.
	failScanWith error
}

func newMemItemStorage() *memItemStorage {
	return &memItemStorage{items: make(map[itemKey]models.Item)}
}

func (m *memItemStorage) InTx(ctx context.Context, owner int64, fn func(ctx context.Context, repo store.ItemRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[itemKey]models.Item, len(m.items))
	for k, v := range m.items {
		snapshot[k] = v
	}
	sequence := m.sequence

	if err := fn(ctx, &memTx{m: m, failScanWith: m.failScanWith}); err != nil {
		m.items = snapshot
		m.sequence = sequence
		return err
	}
	return nil
}

func (m *memItemStorage) GetByUUID(ctx context.Context, owner int64, uuid string) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m: m}).GetByUUID(ctx, owner, uuid)
}

func (m *memItemStorage) Insert(ctx context.Context, item models.Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m: m}).Insert(ctx, item)
}

func (m *memItemStorage) Update(ctx context.Context, item models.Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m: m}).Update(ctx, item)
}

func (m *memItemStorage) ScanAfter(ctx context.Context, owner int64, after int64, limit int) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m: m}).ScanAfter(ctx, owner, after, limit)
}

// all returns a copy of every item of owner, ascending by sequence.
func (m *memItemStorage) all(owner int64) []models.Item {
	items, _ := m.ScanAfter(context.Background(), owner, 0, 1<<30)
	return items
}

// memTx operates on the storage without locking; the caller holds the lock.
type memTx struct {
	m            *memItemStorage
	failScanWith error
}

func (t *memTx) GetByUUID(_ context.Context, owner int64, uuid string) (models.Item, error) {
	item, ok := t.m.items[itemKey{owner, uuid}]
	if !ok {
		return models.Item{}, store.ErrItemNotFound
	}
	return item, nil
}

func (t *memTx) Insert(_ context.Context, item models.Item) (int64, error) {
	key := itemKey{item.Owner, item.UUID}
	if _, ok := t.m.items[key]; ok {
		return 0, store.ErrItemAlreadyExists
	}
	t.m.sequence++
	item.Sequence = t.m.sequence
	t.m.items[key] = item
	return item.Sequence, nil
}

func (t *memTx) Update(_ context.Context, item models.Item) (int64, error) {
	key := itemKey{item.Owner, item.UUID}
	if _, ok := t.m.items[key]; !ok {
		return 0, store.ErrItemNotFound
	}
	t.m.sequence++
	item.Sequence = t.m.sequence
	t.m.items[key] = item
	return item.Sequence, nil
}

func (t *memTx) ScanAfter(_ context.Context, owner int64, after int64, limit int) ([]models.Item, error) {
	if t.failScanWith != nil {
		return nil, t.failScanWith
	}

	items := make([]models.Item, 0)
	for k, v := range t.m.items {
		if k.owner == owner && v.Sequence > after {
			items = append(items, v)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Sequence < items[j].Sequence })

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
