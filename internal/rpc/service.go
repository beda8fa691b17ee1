package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "graphedit.v1.Editor"

const (
	openMethod     = "/" + ServiceName + "/Open"
	dispatchMethod = "/" + ServiceName + "/Dispatch"
	closeMethod    = "/" + ServiceName + "/Close"
)

// EditorServer is the server side of graphedit.v1.Editor.
//
//	Open({})                         -> {session, view}
//	Dispatch({session, event})       -> view
//	Close({session})                 -> {}
type EditorServer interface {
	Open(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Dispatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Close(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Register adds srv to s.
func Register(s grpc.ServiceRegistrar, srv EditorServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EditorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Open", Handler: unaryHandler(openMethod, EditorServer.Open)},
		{MethodName: "Dispatch", Handler: unaryHandler(dispatchMethod, EditorServer.Dispatch)},
		{MethodName: "Close", Handler: unaryHandler(closeMethod, EditorServer.Close)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "graphedit/v1/editor",
}

type unaryMethod func(EditorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler is what protoc-gen-go-grpc would generate for each method.
func unaryHandler(fullMethod string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EditorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(EditorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
