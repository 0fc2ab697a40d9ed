package http

import (
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

// Handler serves the REST API on top of [service.Services].
type Handler struct {
	services *service.Services

	// signer verifies and produces the HashSHA256 header. Nil disables
	// integrity checking.
	signer *utils.BodySigner

	// requestTimeout bounds a single request. Zero disables the limit.
	requestTimeout time.Duration

	// retryAfter is advertised to clients whose sync hit a busy account.
	retryAfter time.Duration

	logger *logger.Logger
}

// NewHandler constructs a Handler. The integrity check is enabled when
// cfg.App.HashKey is set.
func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		requestTimeout: cfg.Server.RequestTimeout,
		retryAfter:     time.Second,
		logger:         logger,
	}

	if cfg.App.HashKey != "" {
		h.signer = utils.NewBodySigner(cfg.App.HashKey)
	}
	if cfg.Sync.GateWait > h.retryAfter {
		h.retryAfter = cfg.Sync.GateWait
	}

	logger.Info().Bool("integrity_check", h.signer != nil).Msg("http handler created")
	return h
}
