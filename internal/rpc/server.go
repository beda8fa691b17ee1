package rpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/psidex/graphedit/internal/lib"
	"github.com/psidex/graphedit/internal/session"
)

type openReply struct {
	Session string       `json:"session"`
	View    session.View `json:"view"`
}

type dispatchRequest struct {
	Session string        `json:"session"`
	Event   session.Event `json:"event"`
}

type closeRequest struct {
	Session string `json:"session"`
}

// Server exposes the sessions in a Registry over gRPC.
type Server struct {
	logger   *slog.Logger
	registry *session.Registry
}

var _ EditorServer = (*Server)(nil)

func NewServer(logger *slog.Logger, registry *session.Registry) *Server {
	return &Server{logger: lib.OrNop(logger), registry: registry}
}

func (s *Server) Open(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	id, sess := s.registry.Open()
	return reply(openReply{Session: id, View: sess.View()})
}

func (s *Server) Dispatch(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dispatchRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed dispatch request: %s", err)
	}

	sess, err := s.registry.Get(req.Session)
	if err != nil {
		return nil, sessionError(req.Session, err)
	}

	view, err := sess.Dispatch(req.Event)
	if errors.Is(err, session.ErrUnknownTrigger) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return reply(view)
}

func (s *Server) Close(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req closeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed close request: %s", err)
	}
	if err := s.registry.Close(req.Session); err != nil {
		return nil, sessionError(req.Session, err)
	}
	return &structpb.Struct{}, nil
}

func sessionError(id string, err error) error {
	if errors.Is(err, session.ErrSessionNotFound) {
		return status.Errorf(codes.NotFound, "session %q not found", id)
	}
	return status.Error(codes.Internal, err.Error())
}

func reply(v interface{}) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding reply: %s", err)
	}
	return out, nil
}

// LoggingInterceptor logs every call with its status code and duration.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	logger = lib.OrNop(logger)
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		level := slog.LevelDebug
		if code != codes.OK {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "gRPC call",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
