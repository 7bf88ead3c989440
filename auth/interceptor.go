package auth

import (
	"context"

	"google.golang.org/grpc"
)

// UnaryServerInterceptor validates bearer tokens on unary RPCs and puts
// the identity on the handler context. A nil authenticator passes
// requests through.
func UnaryServerInterceptor(authenticator Authenticator) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if authenticator == nil {
			return handler(ctx, req)
		}
		token, err := ExtractToken(ctx)
		if err != nil {
			return nil, err
		}
		ctx, err = ValidateToken(ctx, token, authenticator)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(authenticator Authenticator) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if authenticator == nil {
			return handler(srv, ss)
		}
		ctx := ss.Context()
		token, err := ExtractToken(ctx)
		if err != nil {
			return err
		}
		ctx, err = ValidateToken(ctx, token, authenticator)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// wrappedServerStream overrides the stream context with the authenticated
// one.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
