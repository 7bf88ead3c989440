package auth

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity, or "" for an
// unauthenticated request.
func IdentityFromContext(ctx context.Context) string {
	identity, ok := ctx.Value(identityKey).(string)
	if !ok {
		return ""
	}
	return identity
}

const bearerPrefix = "Bearer "

// ExtractToken pulls the bearer token out of incoming gRPC metadata.
// A missing authorization header yields an empty token with no error; a
// malformed one is an Unauthenticated status.
func ExtractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil
	}
	headers := md.Get("authorization")
	if len(headers) == 0 {
		return "", nil
	}

	header := headers[0]
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", status.Error(codes.Unauthenticated, ErrInvalidAuthHeader.Error())
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", status.Error(codes.Unauthenticated, ErrTokenIsEmpty.Error())
	}
	return token, nil
}

// ValidateToken runs the token through the authenticator and returns a
// context carrying the identity, or an Unauthenticated status.
func ValidateToken(ctx context.Context, token string, authenticator Authenticator) (context.Context, error) {
	if token == "" {
		return ctx, status.Error(codes.Unauthenticated, "missing bearer token")
	}
	identity, err := authenticator.Authenticate(ctx, token)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, fmt.Sprintf("invalid token: %v", err))
	}
	return WithIdentity(ctx, identity), nil
}
