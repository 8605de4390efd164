package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "notaryflow.v1.NotaryService"

// NotaryServiceServer is the server API for the notary service.
// Requests and responses are google.protobuf.Struct messages.
type NotaryServiceServer interface {
	ComputeCosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PlanTimeline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CheckCUIT(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateLeadTimes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// NotaryServiceDesc describes the notary service for grpc.Server registration
var NotaryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotaryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ComputeCosts",
			Handler:    unaryHandler("ComputeCosts", NotaryServiceServer.ComputeCosts),
		},
		{
			MethodName: "PlanTimeline",
			Handler:    unaryHandler("PlanTimeline", NotaryServiceServer.PlanTimeline),
		},
		{
			MethodName: "CheckCUIT",
			Handler:    unaryHandler("CheckCUIT", NotaryServiceServer.CheckCUIT),
		},
		{
			MethodName: "UpdateLeadTimes",
			Handler:    unaryHandler("UpdateLeadTimes", NotaryServiceServer.UpdateLeadTimes),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notaryflow/v1/notary.proto",
}

// RegisterNotaryServiceServer registers srv on the given registrar
func RegisterNotaryServiceServer(s grpc.ServiceRegistrar, srv NotaryServiceServer) {
	s.RegisterService(&NotaryServiceDesc, srv)
}

// FullMethod returns the /service/method path of a notary RPC
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryMethod func(NotaryServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a server method to the grpc.MethodDesc handler signature
func unaryHandler(method string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(NotaryServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(NotaryServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
