package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/internal/validators"
	"github.com/MKhiriev/go-notes-sync/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, password
// changes and the session token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher turns the password a client derived from its master key into
	// the value stored server-side.
	hasher crypto.PasswordHasher

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with session token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewAccountValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new account.
//
// The email is lower-cased before storage, the password is hashed and the
// key-derivation parameters are stored verbatim. Returns
// store.ErrEmailAlreadyExists (wrapped) when the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Register").Msg("invalid register request")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("failed to hash password")
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		UUID:         utils.NewUUID(),
		Email:        req.Email,
		PasswordHash: hash,
		PwCost:       req.PwCost,
		PwNonce:      req.PwNonce,
		Version:      req.Version,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// SignIn authenticates an existing account.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials so
// that callers cannot probe which emails are registered.
func (a *authService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "*authService.SignIn").Str("email", req.Email).Msg("sign in for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.SignIn").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = a.checkPassword(ctx, user, req.Password); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Params returns the key-derivation parameters of the account registered
// with email. A missing account yields store.ErrNoUserWasFound (wrapped).
func (a *authService) Params(ctx context.Context, email string) (models.AuthParams, error) {
	email = normalizeEmail(email)
	if err := validators.ValidateEmail(email); err != nil {
		return models.AuthParams{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		return models.AuthParams{}, fmt.Errorf("user search by email failed: %w", err)
	}

	return models.AuthParams{
		PwCost:  user.PwCost,
		PwNonce: user.PwNonce,
		Version: user.Version,
	}, nil
}

// User returns the account behind an authenticated session.
func (a *authService) User(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.User").Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the current password of userID and replaces it.
// Key-derivation parameters are replaced only when the request sets them.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = a.checkPassword(ctx, user, req.CurrentPassword); err != nil {
		return models.User{}, err
	}

	user.PasswordHash, err = a.hasher.Hash(req.NewPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if req.PwCost != 0 {
		user.PwCost = req.PwCost
	}
	if req.PwNonce != "" {
		user.PwNonce = req.PwNonce
	}
	if req.Version != "" {
		user.Version = req.Version
	}

	if err = a.userRepository.UpdateCredentials(ctx, user); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", userID).Msg("failed to store new credentials")
		return models.User{}, fmt.Errorf("update credentials: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) checkPassword(ctx context.Context, user models.User, password string) error {
	ok, err := a.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.checkPassword").
			Int64("user_id", user.UserID).
			Msg("stored password hash is unreadable")
		return fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		logger.FromContext(ctx).Info().
			Str("func", "*authService.checkPassword").
			Int64("user_id", user.UserID).
			Msg("wrong password")
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
