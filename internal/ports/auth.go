package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
)

// ErrInvalidCode marks a code exchange rejected by the identity provider
// (expired, replayed, or forged authorization code). Handlers translate it
// to a client error; every other exchange failure is internal.
var ErrInvalidCode = errors.New("invalid authorization code")

// ErrStateNotFound is returned by StateStore.Consume when the state token
// does not exist, has expired, or was already consumed.
var ErrStateNotFound = errors.New("login state not found")

// ErrSessionNotFound is returned by SessionStore.Get when no session exists
// for the given ID.
var ErrSessionNotFound = errors.New("session not found")

// BeginResult carries the outputs of initiating an auth flow.
type BeginResult struct {
	AuthURL string
	State   string
	Nonce   string // empty for providers without an id_token
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	Nonce string // the nonce issued at Begin, for providers that verify one
}

// AuthProvider initiates and completes an authentication flow against an
// identity provider.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL plus the
	// opaque state (and nonce, when applicable) bound to this attempt.
	Begin(ctx context.Context) (BeginResult, error)

	// Exchange completes the login flow and returns the authenticated identity.
	// A provider-rejected code is reported as (or wrapping) ErrInvalidCode.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// StateStore records in-flight login attempts keyed by state token.
// Consume is atomic: exactly one caller can consume a given token.
type StateStore interface {
	Save(ctx context.Context, st domainauth.LoginState) error
	Consume(ctx context.Context, token string) (domainauth.LoginState, error)
}
