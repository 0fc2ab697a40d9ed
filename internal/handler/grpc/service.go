package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "notesync.v1.SyncService"

	// SyncItemsMethod is the full method name of the sync call.
	SyncItemsMethod = "/" + ServiceName + "/SyncItems"
)

// SyncServer is the server API of [ServiceName].
type SyncServer interface {
	SyncItems(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error)
}

// SyncServiceDesc describes [ServiceName] for grpc.Server.RegisterService.
// Messages are JSON documents, see the json codec.
var SyncServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SyncItems",
			Handler:    syncItemsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notesync/v1/sync.json",
}

func syncItemsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.SyncRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServer).SyncItems(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SyncItemsMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServer).SyncItems(ctx, req.(*models.SyncRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SyncClient calls [ServiceName] over a client connection using the JSON
// codec.
type SyncClient struct {
	cc grpc.ClientConnInterface
}

// NewSyncClient wraps cc.
func NewSyncClient(cc grpc.ClientConnInterface) *SyncClient {
	return &SyncClient{cc: cc}
}

// SyncItems runs one sync round trip. The caller attaches the bearer token
// as "authorization" outgoing metadata.
func (c *SyncClient) SyncItems(ctx context.Context, req *models.SyncRequest, opts ...grpc.CallOption) (*models.SyncResponse, error) {
	out := new(models.SyncResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, SyncItemsMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
