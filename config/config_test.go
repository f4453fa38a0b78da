package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "discord", input: "discord", expected: AuthModeDiscord},
		{name: "oidc", input: "oidc", expected: AuthModeOIDC},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase normalized", input: "Discord", expected: AuthModeDiscord},
		{name: "unknown mode", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m AuthMode
			err := m.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, m)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeDiscord {
		t.Errorf("expected default auth mode discord, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.SessionTTL != 720*time.Hour {
		t.Errorf("expected default session TTL 720h, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default db port 5432, got %d", cfg.Postgres.Port)
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth: AuthConfig{SessionTTL: -time.Hour},
		HTTP: HTTPConfig{Addr: "", BaseURL: ""},
	}
	cfg.Sanitize()

	if cfg.Auth.SessionTTL != 720*time.Hour {
		t.Errorf("expected negative session TTL reset to 720h, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected empty addr reset to :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.BaseURL == "" {
		t.Error("expected empty base URL to be defaulted")
	}
}

func TestDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}
