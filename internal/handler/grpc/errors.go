package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-notes-sync/internal/crypto"
	"github.com/MKhiriev/go-notes-sync/internal/gate"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

var errorCodeMap = []struct {
	err  error
	code codes.Code
}{
	{crypto.ErrInvalidSyncToken, codes.InvalidArgument},
	{service.ErrInvalidLimit, codes.InvalidArgument},
	{service.ErrTooManyItems, codes.InvalidArgument},
	{service.ErrInvalidDataProvided, codes.InvalidArgument},
	{gate.ErrBusy, codes.Unavailable},
	{service.ErrNoOwner, codes.Unauthenticated},
	{service.ErrTokenIsExpiredOrInvalid, codes.Unauthenticated},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
	{context.Canceled, codes.Canceled},
}

// toStatus converts a service error to a gRPC status. Client errors keep
// their message; everything else becomes a bare Internal.
func toStatus(err error) error {
	for _, entry := range errorCodeMap {
		if errors.Is(err, entry.err) {
			return status.Error(entry.code, err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}
