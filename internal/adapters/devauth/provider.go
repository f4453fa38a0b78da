package devauth

// Package devauth provides a simple, config-driven AuthProvider for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	ExternalID string
	Username   string
	AvatarURL  string // optional
}

// Provider implements ports.AuthProvider for local development.
// It short-circuits the OAuth flow by redirecting straight back to our own
// callback with a locally generated state. Exchange ignores the code and
// returns the configured identity.
type Provider struct {
	identity domainauth.Identity
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.ExternalID == "" {
		return nil, errors.New("dev auth: ExternalID is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("dev auth: Username is required")
	}
	return &Provider{
		identity: domainauth.Identity{
			ExternalID: cfg.ExternalID,
			Username:   cfg.Username,
			AvatarURL:  cfg.AvatarURL,
		},
	}, nil
}

// Begin returns a local callback URL and a cryptographically secure state.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := randomString(24)
	if err != nil {
		return ports.BeginResult{}, err
	}
	// The standard handler expects GET /auth/callback?code=...&state=...
	return ports.BeginResult{
		AuthURL: "/auth/callback?code=dev&state=" + state,
		State:   state,
	}, nil
}

// Exchange ignores the provided code (validation handled upstream) and returns the dev identity.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	return p.identity, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
