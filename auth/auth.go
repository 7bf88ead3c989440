// Package auth provides bearer-token authentication for statline Flight
// servers.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is
	// malformed.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when no bearer token is present.
	ErrTokenIsEmpty = errors.New("authorization token is empty")

	// ErrUnauthenticated is returned when token validation fails.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authenticator validates bearer tokens and returns a user identity.
// Implementations must be goroutine-safe. The identity string is used for
// logging only; the engine applies no per-identity authorization.
type Authenticator interface {
	// Authenticate validates a bearer token. The context carries the
	// request deadline for implementations that call an auth backend.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// noAuthenticator allows every request.
type noAuthenticator struct{}

// NoAuth returns an Authenticator that allows all requests as "anonymous".
// For development and tests only.
func NoAuth() Authenticator {
	return &noAuthenticator{}
}

func (n *noAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return "anonymous", nil
}

// staticTokenAuthenticator accepts a single pre-shared token.
type staticTokenAuthenticator struct {
	token []byte
}

// StaticToken returns an Authenticator accepting exactly one pre-shared
// token. Comparison is constant-time.
func StaticToken(token string) Authenticator {
	return &staticTokenAuthenticator{token: []byte(token)}
}

func (s *staticTokenAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	if subtle.ConstantTimeCompare(s.token, []byte(token)) != 1 {
		return "", ErrUnauthenticated
	}
	return "token-client", nil
}
