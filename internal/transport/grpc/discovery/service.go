package discovery

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "discovery.v1.DiscoveryService"

const (
	browseCategoryMethod = "/" + ServiceName + "/BrowseCategory"
	searchProductsMethod = "/" + ServiceName + "/SearchProducts"
)

// DiscoveryServiceServer is the server API for the discovery service.
// Requests and replies are structpb.Struct documents shaped like the HTTP
// API's query parameters and JSON bodies.
type DiscoveryServiceServer interface {
	BrowseCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDiscoveryServiceServer registers srv on s.
func RegisterDiscoveryServiceServer(s grpc.ServiceRegistrar, srv DiscoveryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the discovery service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiscoveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BrowseCategory",
			Handler:    browseCategoryHandler,
		},
		{
			MethodName: "SearchProducts",
			Handler:    searchProductsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "discovery/v1/discovery.proto",
}

func browseCategoryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiscoveryServiceServer).BrowseCategory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: browseCategoryMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiscoveryServiceServer).BrowseCategory(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func searchProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiscoveryServiceServer).SearchProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: searchProductsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiscoveryServiceServer).SearchProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// DiscoveryServiceClient is the client API for the discovery service.
type DiscoveryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiscoveryServiceClient creates a client on cc.
func NewDiscoveryServiceClient(cc grpc.ClientConnInterface) *DiscoveryServiceClient {
	return &DiscoveryServiceClient{cc: cc}
}

// BrowseCategory calls DiscoveryService.BrowseCategory.
func (c *DiscoveryServiceClient) BrowseCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, browseCategoryMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProducts calls DiscoveryService.SearchProducts.
func (c *DiscoveryServiceClient) SearchProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, searchProductsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
