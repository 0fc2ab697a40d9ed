package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// Handler is the root gRPC transport handler. It implements [SyncServer].
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is the parent of every request-scoped logger.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	s.RegisterService(&SyncServiceDesc, h)
}

// ServerOptions returns the interceptor chain the handler relies on.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withLogging, h.auth),
	}
}

// SyncItems implements [SyncServer].
func (h *Handler) SyncItems(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error) {
	owner, found := utils.GetUserIDFromContext(ctx)
	if !found {
		return nil, toStatus(service.ErrNoOwner)
	}

	resp, err := h.services.SyncService.Sync(ctx, owner, *req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.SyncItems").Int64("owner", owner).Msg("sync failed")
		return nil, toStatus(err)
	}

	return &resp, nil
}
