package httpx

import (
	"context"

	"github.com/driftbox/driftbox/internal/service"
)

// authedUserKey is an unexported context key type to avoid collisions across
// packages. Centralized here so all handlers and middleware share one key.
type authedUserKey struct{}

// SetAuthedUserInContext returns a child context carrying the authenticated
// user. A nil value returns the original ctx unchanged.
func SetAuthedUserInContext(ctx context.Context, authed *service.AuthedUser) context.Context {
	if authed == nil {
		return ctx
	}
	return context.WithValue(ctx, authedUserKey{}, authed)
}

// AuthedUserFromContext returns the authenticated user from context and a
// boolean indicating presence.
func AuthedUserFromContext(ctx context.Context) (*service.AuthedUser, bool) {
	if authed, ok := ctx.Value(authedUserKey{}).(*service.AuthedUser); ok && authed != nil {
		return authed, true
	}
	return nil, false
}
