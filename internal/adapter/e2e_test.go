package adapter

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-notes-sync/internal/handler/http"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

const e2eHashKey = "e2e-hash-key"

// newE2EServer runs the real router over SQLite and returns its URL.
func newE2EServer(t *testing.T, maxItems int) string {
	t.Helper()

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "e2e-sign-key",
			TokenIssuer:   "go-notes-sync",
			TokenDuration: time.Hour,
			HashKey:       e2eHashKey,
			Version:       "1.0.0-e2e",
		},
		Sync: config.Sync{
			TokenSecret:   "e2e-token-secret",
			TokenSalt:     "e2e-token-salt",
			KeyIterations: 1000,
			MaxLimit:      100,
			MaxItems:      maxItems,
			GateWait:      time.Second,
		},
		Storage: config.Storage{DB: config.DB{DSN: filepath.Join(t.TempDir(), "notes.db")}},
		Server:  config.Server{RequestTimeout: 5 * time.Second},
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(myHTTP.NewHandler(services, cfg, logger.Nop()).Init())
	t.Cleanup(srv.Close)

	return srv.URL
}

func newDevice(t *testing.T, url string) SyncClient {
	t.Helper()

	client, err := NewHTTPSyncClient(Config{BaseURL: url, HashKey: e2eHashKey, Timeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return client
}

func note(uuid, content string) models.ItemSubmission {
	return models.ItemSubmission{UUID: uuid, Content: content, ContentType: "Note", EncItemKey: "key-" + uuid}
}

// resubmit turns a server copy back into a submission carrying its
// updated_at witness.
func resubmit(item models.Item, content string) models.ItemSubmission {
	updatedAt := item.UpdatedAt
	createdAt := item.CreatedAt
	return models.ItemSubmission{
		UUID:        item.UUID,
		Content:     content,
		ContentType: item.ContentType,
		EncItemKey:  item.EncItemKey,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
}

func TestE2E_TwoDevices(t *testing.T) {
	ctx := context.Background()
	url := newE2EServer(t, 100)

	laptop := newDevice(t, url)
	phone := newDevice(t, url)

	// ───── accounts ─────

	registered, err := laptop.Register(ctx, models.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "derived-pw",
		PwCost:   110000,
		PwNonce:  "nonce-1",
		Version:  "004",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", registered.User.Email)
	assert.NotEmpty(t, laptop.Token())

	params, err := phone.Params(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.AuthParams{PwCost: 110000, PwNonce: "nonce-1", Version: "004"}, params)

	_, err = phone.SignIn(ctx, models.SignInRequest{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = phone.SignIn(ctx, models.SignInRequest{Email: "alice@example.com", Password: "derived-pw"})
	require.NoError(t, err)

	// ───── first upload ─────

	first, err := laptop.Sync(ctx, models.SyncRequest{Items: []models.ItemSubmission{note("n1", "hello")}})
	require.NoError(t, err)
	require.Len(t, first.SavedItems, 1)
	assert.Empty(t, first.UnsavedItems)
	require.Len(t, first.RetrievedItems, 1, "own writes are retrieved")
	assert.NotEmpty(t, first.SyncToken)
	assert.False(t, first.HasMore)

	// ───── second device catches up ─────

	caughtUp, err := phone.Sync(ctx, models.SyncRequest{})
	require.NoError(t, err)
	require.Len(t, caughtUp.RetrievedItems, 1)
	phoneCopy := caughtUp.RetrievedItems[0]
	assert.Equal(t, "hello", phoneCopy.Content)

	// ───── concurrent edit produces a conflict ─────

	edited, err := laptop.Sync(ctx, models.SyncRequest{
		SyncToken: first.SyncToken,
		Items:     []models.ItemSubmission{resubmit(first.SavedItems[0], "hello from laptop")},
	})
	require.NoError(t, err)
	require.Len(t, edited.SavedItems, 1)

	conflicted, err := phone.Sync(ctx, models.SyncRequest{
		SyncToken: caughtUp.SyncToken,
		Items:     []models.ItemSubmission{resubmit(phoneCopy, "hello from phone")},
	})
	require.NoError(t, err)
	assert.Empty(t, conflicted.SavedItems)
	require.Len(t, conflicted.UnsavedItems, 1)
	assert.Equal(t, models.SyncConflict, conflicted.UnsavedItems[0].Type)
	require.NotNil(t, conflicted.UnsavedItems[0].ServerItem)
	assert.Equal(t, "hello from laptop", conflicted.UnsavedItems[0].ServerItem.Content)

	// ───── tombstone travels back ─────

	tombstone := resubmit(*conflicted.UnsavedItems[0].ServerItem, "")
	tombstone.Deleted = true
	deleted, err := phone.Sync(ctx, models.SyncRequest{SyncToken: conflicted.SyncToken, Items: []models.ItemSubmission{tombstone}})
	require.NoError(t, err)
	require.Len(t, deleted.SavedItems, 1)
	assert.True(t, deleted.SavedItems[0].Deleted)

	pulled, err := laptop.Sync(ctx, models.SyncRequest{SyncToken: edited.SyncToken})
	require.NoError(t, err)
	require.Len(t, pulled.RetrievedItems, 1)
	assert.Equal(t, "n1", pulled.RetrievedItems[0].UUID)
	assert.True(t, pulled.RetrievedItems[0].Deleted)
	assert.Empty(t, pulled.RetrievedItems[0].Content)
	assert.Empty(t, pulled.RetrievedItems[0].EncItemKey)

	// ───── nothing new ─────

	idle, err := laptop.Sync(ctx, models.SyncRequest{SyncToken: pulled.SyncToken})
	require.NoError(t, err)
	assert.Empty(t, idle.RetrievedItems)
	assert.Equal(t, pulled.SyncToken, idle.SyncToken)
}

func TestE2E_TokenOfAnotherUserIsRejected(t *testing.T) {
	ctx := context.Background()
	url := newE2EServer(t, 100)

	alice := newDevice(t, url)
	bob := newDevice(t, url)

	_, err := alice.Register(ctx, models.RegisterRequest{Email: "alice@example.com", Password: "pw-a"})
	require.NoError(t, err)
	_, err = bob.Register(ctx, models.RegisterRequest{Email: "bob@example.com", Password: "pw-b"})
	require.NoError(t, err)

	aliceResp, err := alice.Sync(ctx, models.SyncRequest{Items: []models.ItemSubmission{note("a1", "secret")}})
	require.NoError(t, err)

	_, err = bob.Sync(ctx, models.SyncRequest{SyncToken: aliceResp.SyncToken})
	assert.ErrorIs(t, err, ErrBadRequest)

	bobResp, err := bob.Sync(ctx, models.SyncRequest{})
	require.NoError(t, err)
	assert.Empty(t, bobResp.RetrievedItems, "owners never see each other's items")
}

func TestE2E_Rejections(t *testing.T) {
	ctx := context.Background()
	url := newE2EServer(t, 2)
	device := newDevice(t, url)

	_, err := device.Sync(ctx, models.SyncRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized, "sync requires a session")

	_, err = device.Ping(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized, "ping requires a session")

	_, err = device.Register(ctx, models.RegisterRequest{Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	me, err := device.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", me.Email)

	_, err = newDevice(t, url).Register(ctx, models.RegisterRequest{Email: "carol@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = device.Params(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = device.Sync(ctx, models.SyncRequest{Items: []models.ItemSubmission{note("1", ""), note("2", ""), note("3", "")}})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	_, err = device.Sync(ctx, models.SyncRequest{Limit: -1})
	assert.ErrorIs(t, err, ErrBadRequest)

	version, err := device.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0-e2e", version.Version)
}

func TestE2E_ChangePassword(t *testing.T) {
	ctx := context.Background()
	url := newE2EServer(t, 100)
	device := newDevice(t, url)

	_, err := device.Register(ctx, models.RegisterRequest{Email: "dave@example.com", Password: "old-pw", PwNonce: "n1"})
	require.NoError(t, err)

	_, err = device.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: "old-pw", NewPassword: "new-pw", PwNonce: "n2"})
	require.NoError(t, err)

	other := newDevice(t, url)
	_, err = other.SignIn(ctx, models.SignInRequest{Email: "dave@example.com", Password: "old-pw"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = other.SignIn(ctx, models.SignInRequest{Email: "dave@example.com", Password: "new-pw"})
	require.NoError(t, err)

	params, err := other.Params(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, "n2", params.PwNonce)
}

func TestE2E_DrainPagesWithoutGapsOrDuplicates(t *testing.T) {
	ctx := context.Background()
	url := newE2EServer(t, 100)

	writer := newDevice(t, url)
	_, err := writer.Register(ctx, models.RegisterRequest{Email: "erin@example.com", Password: "pw"})
	require.NoError(t, err)

	uploaded, err := writer.Sync(ctx, models.SyncRequest{Items: []models.ItemSubmission{
		note("p1", "1"), note("p2", "2"), note("p3", "3"), note("p4", "4"),
	}})
	require.NoError(t, err)
	require.Len(t, uploaded.SavedItems, 4)

	reader := newDevice(t, url)
	_, err = reader.SignIn(ctx, models.SignInRequest{Email: "erin@example.com", Password: "pw"})
	require.NoError(t, err)

	drained, err := Drain(ctx, reader, models.SyncRequest{Limit: 1})
	require.NoError(t, err)
	assert.False(t, drained.HasMore)

	uuids := make([]string, 0, len(drained.RetrievedItems))
	for _, item := range drained.RetrievedItems {
		uuids = append(uuids, item.UUID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, uuids)

	rest, err := reader.Sync(ctx, models.SyncRequest{SyncToken: drained.SyncToken})
	require.NoError(t, err)
	assert.Empty(t, rest.RetrievedItems)
}
