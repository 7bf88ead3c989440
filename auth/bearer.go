package auth

import "context"

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validate func(token string) (identity string, err error)
}

// BearerAuth creates an Authenticator from a validation function. This is
// the simplest way to plug an existing token backend in:
//
//	a := auth.BearerAuth(func(token string) (string, error) {
//	    user, err := lookupSession(token)
//	    if err != nil {
//	        return "", auth.ErrUnauthenticated
//	    }
//	    return user.ID, nil
//	})
func BearerAuth(validate func(token string) (identity string, err error)) Authenticator {
	return &bearerAuthenticator{validate: validate}
}

// Authenticate calls the wrapped validation function. The function itself
// does not receive the context; backends needing deadlines should
// implement Authenticator directly.
func (b *bearerAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return b.validate(token)
}
