package bootstrap

import (
	"fmt"

	"github.com/driftbox/driftbox/config"
	"github.com/driftbox/driftbox/internal/adapters/devauth"
	"github.com/driftbox/driftbox/internal/adapters/discord"
	"github.com/driftbox/driftbox/internal/adapters/oidc"
	"github.com/driftbox/driftbox/internal/ports"
)

// BuildAuthProvider constructs the identity provider selected by AUTH_MODE.
// Providers are explicitly constructed and injected; nothing here is a
// package-level singleton.
//
//nolint:ireturn // the selected provider is intentionally returned behind the port interface.
func BuildAuthProvider(cfg config.AuthConfig) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeDiscord:
		prov, err := discord.NewProvider(discord.ProviderConfig{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			RedirectURL:  cfg.Discord.RedirectURL,
			Scope:        cfg.Discord.Scope,
		})
		if err != nil {
			return nil, fmt.Errorf("discord provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOIDC:
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Scope:        cfg.OIDC.Scope,
			IssuerURL:    cfg.OIDC.IssuerURL,
		})
		if err != nil {
			return nil, fmt.Errorf("oidc provider: %w", err)
		}
		return prov, nil

	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			ExternalID: cfg.DevAuth.ExternalID,
			Username:   cfg.DevAuth.Username,
			AvatarURL:  cfg.DevAuth.AvatarURL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
