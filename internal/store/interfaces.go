package store

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateCredentials(ctx context.Context, user models.User) error
}

// ItemRepository is the owner-scoped item store consumed by the sync engine.
// No method ever reads or writes another owner's rows.
type ItemRepository interface {
	// GetByUUID returns the item or [ErrItemNotFound].
	GetByUUID(ctx context.Context, owner int64, uuid string) (models.Item, error)

	// Insert stores a new item and returns its freshly allocated sequence.
	Insert(ctx context.Context, item models.Item) (int64, error)

	// Update overwrites payload, deleted flag and updated_at of an existing
	// item and moves it to a new, higher sequence, which it returns.
	Update(ctx context.Context, item models.Item) (int64, error)

	// ScanAfter returns up to limit items with sequence > after, ascending.
	ScanAfter(ctx context.Context, owner int64, after int64, limit int) ([]models.Item, error)
}

// ItemStorage adds atomic batches on top of [ItemRepository].
type ItemStorage interface {
	ItemRepository

	// InTx runs fn against a repository bound to one transaction that is
	// committed when fn returns nil and rolled back otherwise. Transient
	// database failures rerun fn from scratch, so fn must not keep state
	// across invocations.
	InTx(ctx context.Context, owner int64, fn func(ctx context.Context, repo ItemRepository) error) error
}
