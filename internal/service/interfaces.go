package service

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService runs one synchronization round trip for an account.
type SyncService interface {
	// Sync uploads req.Items and returns everything changed after
	// req.SyncToken, together with a new token.
	Sync(ctx context.Context, owner int64, req models.SyncRequest) (models.SyncResponse, error)
}

// ConflictResolver decides, per submission, whether to save it or to report
// a conflict. It writes through repo, which is bound to the caller's
// transaction.
type ConflictResolver interface {
	Resolve(ctx context.Context, repo store.ItemRepository, owner int64, submissions []models.ItemSubmission) ([]models.Item, []models.Conflict, error)
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	SignIn(ctx context.Context, req models.SignInRequest) (models.User, error)
	Params(ctx context.Context, email string) (models.AuthParams, error)
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, error)
	User(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
