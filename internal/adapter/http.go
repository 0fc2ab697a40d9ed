package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

const hashHeader = "HashSHA256"

// Config describes how to reach the server.
type Config struct {
	// BaseURL of the server, e.g. "localhost:8080" or "https://notes.example".
	BaseURL string
	// HashKey signs request bodies and verifies response bodies when set.
	// It must match the server's key.
	HashKey string
	Timeout time.Duration

	// RetryCount is how many times a 503 response is retried.
	RetryCount   int
	RetryMaxWait time.Duration
}

type httpSyncClient struct {
	client *resty.Client
	signer *utils.BodySigner

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPSyncClient constructs an HTTP/REST implementation of [SyncClient].
// A 503 from a busy server is retried up to cfg.RetryCount times, waiting as
// long as the Retry-After header asks but no longer than cfg.RetryMaxWait.
func NewHTTPSyncClient(cfg Config, log *logger.Logger) (SyncClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{log}).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp.StatusCode() == http.StatusServiceUnavailable
		}).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			return parseRetryAfter(resp.Header().Get("Retry-After")), nil
		})

	adapter := &httpSyncClient{client: client, logger: log}
	if cfg.HashKey != "" {
		adapter.signer = utils.NewBodySigner(cfg.HashKey)
	}

	return adapter, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpSyncClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpSyncClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpSyncClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", req)
}

func (h *httpSyncClient) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/sign_in", req)
}

func (h *httpSyncClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/change_pw", req)
}

func (h *httpSyncClient) Params(ctx context.Context, email string) (models.AuthParams, error) {
	var params models.AuthParams

	resp, err := h.request(ctx).
		SetQueryParam("email", email).
		Get("/api/auth/params")
	if err != nil {
		return params, fmt.Errorf("params request: %w", err)
	}
	if err = h.decode(resp, &params); err != nil {
		return params, fmt.Errorf("params: %w", err)
	}

	return params, nil
}

func (h *httpSyncClient) Ping(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).Get("/api/auth/ping")
	if err != nil {
		return user, fmt.Errorf("ping request: %w", err)
	}
	if err = h.decode(resp, &user); err != nil {
		return user, fmt.Errorf("ping: %w", err)
	}

	return user, nil
}

func (h *httpSyncClient) Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error) {
	var syncResp models.SyncResponse

	resp, err := h.post(ctx, "/api/items/sync", req)
	if err != nil {
		return syncResp, fmt.Errorf("sync request: %w", err)
	}
	if err = h.decode(resp, &syncResp); err != nil {
		return syncResp, fmt.Errorf("sync: %w", err)
	}

	h.logger.Debug().Str("func", "*httpSyncClient.Sync").
		Int("retrieved", len(syncResp.RetrievedItems)).
		Int("saved", len(syncResp.SavedItems)).
		Int("unsaved", len(syncResp.UnsavedItems)).
		Bool("has_more", syncResp.HasMore).
		Msg("sync round trip finished")

	return syncResp, nil
}

func (h *httpSyncClient) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse

	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return version, fmt.Errorf("version request: %w", err)
	}
	if err = h.decode(resp, &version); err != nil {
		return version, fmt.Errorf("version: %w", err)
	}

	return version, nil
}

// authenticate posts an account request and keeps the session token the
// server answers with.
func (h *httpSyncClient) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.post(ctx, path, body)
	if err != nil {
		return authResp, fmt.Errorf("%s request: %w", path, err)
	}
	if err = h.decode(resp, &authResp); err != nil {
		return authResp, fmt.Errorf("%s: %w", path, err)
	}

	token := authResp.Token
	if token == "" {
		token, _ = utils.ParseBearerToken(resp.Header().Get("Authorization"))
	}
	if token == "" {
		return authResp, ErrMissingSessionToken
	}

	h.SetToken(token)
	return authResp, nil
}

// post sends body as JSON, signed when a hash key is configured.
func (h *httpSyncClient) post(ctx context.Context, path string, body any) (*resty.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.signer != nil {
		req.SetHeader(hashHeader, h.signer.SignHex(payload))
	}

	return req.Post(path)
}

func (h *httpSyncClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decode maps non-2xx responses to errors, checks the response signature
// and unmarshals the body into dst.
func (h *httpSyncClient) decode(resp *resty.Response, dst any) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	if h.signer != nil && !h.signer.Verify(resp.Body(), resp.Header().Get(hashHeader)) {
		h.logger.Error().Str("func", "*httpSyncClient.decode").
			Str("hash from response", resp.Header().Get(hashHeader)).
			Msg("hashes are not equal")
		return ErrIntegrityCheckFailed
	}

	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// restyLogger routes resty's own messages into zerolog.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Str("component", "resty").Msgf(format, v...)
}
