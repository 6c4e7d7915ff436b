package interceptors

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

// Auth authenticates every call except health checks using the
// "authorization" metadata key.
func Auth(tokens *auth.Tokens) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
			return handler(ctx, req)
		}
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, auth.ErrUnauthorized
		}
		principal, err := tokens.ParseBearer(values[0])
		if err != nil {
			return nil, err
		}
		return handler(auth.WithPrincipal(ctx, principal), req)
	}
}

// Errors converts service errors into gRPC statuses and logs each call.
func Errors() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			st := ToStatus(err)
			log.Printf("grpc request: method=%s code=%s duration=%s err=%v", info.FullMethod, st.Code(), time.Since(start), err)
			return nil, st.Err()
		}
		log.Printf("grpc request: method=%s code=OK duration=%s", info.FullMethod, time.Since(start))
		return resp, nil
	}
}

func ToStatus(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}

	var dup *domain.DuplicateSeatError
	switch {
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return status.New(codes.Unauthenticated, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return status.New(codes.PermissionDenied, err.Error())
	case errors.As(err, &dup):
		return status.New(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrEmptyOrder), errors.Is(err, domain.ErrInvalidInput):
		return status.New(codes.InvalidArgument, err.Error())
	}

	var ticketErr *domain.TicketError
	if errors.As(err, &ticketErr) && errors.Is(err, domain.ErrNotFound) {
		return status.New(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, domain.ErrNotFound) {
		return status.New(codes.NotFound, err.Error())
	}
	if _, ok := domain.Fields(err); ok {
		return status.New(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.New(codes.DeadlineExceeded, err.Error())
	}
	if errors.Is(err, context.Canceled) {
		return status.New(codes.Canceled, err.Error())
	}
	return status.New(codes.Internal, "internal error")
}
