package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"
)

// auth authenticates every call with the bearer token of the
// "authorization" metadata and stores the account id in the context.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstMetadata(ctx, authorizationKey))
	if err != nil {
		log.Err(err).Str("func", "*Handler.auth").Str("method", info.FullMethod).Msg("missing token")
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*Handler.auth").Str("method", info.FullMethod).Msg("error occurred during parsing token")
		return nil, toStatus(err)
	}

	return handler(utils.WithUserID(ctx, token.UserID), req)
}

// withLogging attaches a request-scoped logger carrying the trace id and
// logs the outcome of the call.
func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadata(ctx, traceIDKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	ctx = l.WithContext(ctx)
	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))

	start := time.Now()
	resp, err := handler(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
