// Package identity carries the authenticated user of a request through its
// context.Context. Handlers and services read it instead of ambient state.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when a protected operation runs without an
// authenticated session.
var ErrUnauthorized = errors.New("unauthorized")

type contextKey struct{}

// Identity is what the session layer resolved for one request
type Identity struct {
	UserID       uint
	SessionToken string
}

// WithUser returns a copy of ctx carrying an authenticated userID and the
// session token that proved it.
func WithUser(ctx context.Context, userID uint, sessionToken string) context.Context {
	return context.WithValue(ctx, contextKey{}, Identity{UserID: userID, SessionToken: sessionToken})
}

// FromContext returns the identity attached to ctx, if any
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}

// CurrentUser returns the authenticated user id without failing
func CurrentUser(ctx context.Context) (uint, bool) {
	id, ok := FromContext(ctx)
	return id.UserID, ok
}

// RequireAuthenticated returns the authenticated user id or ErrUnauthorized
func RequireAuthenticated(ctx context.Context) (uint, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return 0, ErrUnauthorized
	}
	return id.UserID, nil
}
