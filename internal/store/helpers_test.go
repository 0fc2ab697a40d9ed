package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// ─────── sqlmock ───────

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &DB{
		DB:                 sqlDB,
		dialect:            Postgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// ─────── sqlite ───────

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(testContext(), config.DB{DSN: filepath.Join(t.TempDir(), "notes.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func createTestUser(t *testing.T, repo UserRepository, email string) models.User {
	t.Helper()

	user, err := repo.CreateUser(testContext(), models.User{
		UUID:         "uuid-" + email,
		Email:        email,
		PasswordHash: "hash",
		PwCost:       110000,
		PwNonce:      "nonce",
		Version:      "003",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	})
	require.NoError(t, err)
	return user
}

func testItem(owner int64, uuid, content string) models.Item {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Item{
		Owner:       owner,
		UUID:        uuid,
		Content:     content,
		ContentType: "Note",
		EncItemKey:  "key-" + uuid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
