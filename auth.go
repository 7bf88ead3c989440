package statline

import (
	"context"

	"github.com/statline-lab/statline-go/auth"
)

// Authenticator validates bearer tokens and returns a user identity.
// Re-exported from the auth package for convenience.
type Authenticator = auth.Authenticator

// BearerAuth creates an Authenticator from a validation function.
func BearerAuth(validate func(token string) (identity string, err error)) Authenticator {
	return auth.BearerAuth(validate)
}

// StaticToken creates an Authenticator accepting a single pre-shared
// token.
func StaticToken(token string) Authenticator {
	return auth.StaticToken(token)
}

// NoAuth returns an Authenticator that allows all requests. For
// development and tests only.
func NoAuth() Authenticator {
	return auth.NoAuth()
}

// IdentityFromContext returns the authenticated identity for the request,
// or "" when unauthenticated. Usable inside Fetcher implementations.
func IdentityFromContext(ctx context.Context) string {
	return auth.IdentityFromContext(ctx)
}
