package grpc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/notaryflow-backend/internal/platform/logger"
)

// RequestIDHeader is the metadata key carrying the request ID
const RequestIDHeader = "x-request-id"

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// Both "<token>" and "Bearer <token>" are accepted.
// If the token is missing or invalid, it returns status.Unauthenticated.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token := strings.TrimPrefix(authHeaders[0], "Bearer ")
		if token != validToken {
			logger.FromContext(ctx).Warn("rejected request with invalid token", "method", info.FullMethod)
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// RequestIDInterceptor tags every call with a request ID, taken from the
// x-request-id metadata or generated, and stores a request-scoped logger in the context.
// The ID is echoed back as a response header.
func RequestIDInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDHeader); len(ids) > 0 {
				requestID = strings.TrimSpace(ids[0])
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		reqLog := log.With("request_id", requestID, "method", info.FullMethod)
		ctx = logger.ToContext(ctx, reqLog)

		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			reqLog.Debug("request id header not sent", "error", err)
		}

		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if err != nil && code == codes.Internal {
			reqLog.Error("request failed", "code", code.String(), "duration", time.Since(start), "error", err)
		} else {
			reqLog.Info("request completed", "code", code.String(), "duration", time.Since(start))
		}

		return resp, err
	}
}
