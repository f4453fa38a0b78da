package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftbox/driftbox/config"
)

func TestBuildAuthProvider_Mock(t *testing.T) {
	t.Parallel()
	prov, err := BuildAuthProvider(config.AuthConfig{
		Mode: config.AuthModeMock,
		DevAuth: config.DevAuthConfig{
			ExternalID: "dev-user",
			Username:   "devuser",
		},
	})

	require.NoError(t, err)
	assert.NotNil(t, prov)
}

func TestBuildAuthProvider_DiscordMissingConfig(t *testing.T) {
	t.Parallel()
	prov, err := BuildAuthProvider(config.AuthConfig{Mode: config.AuthModeDiscord})

	require.Error(t, err)
	assert.Nil(t, prov)
	assert.Contains(t, err.Error(), "discord provider")
}

func TestBuildAuthProvider_Discord(t *testing.T) {
	t.Parallel()
	prov, err := BuildAuthProvider(config.AuthConfig{
		Mode: config.AuthModeDiscord,
		Discord: config.DiscordConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8080/auth/callback",
			Scope:        "identify",
		},
	})

	require.NoError(t, err)
	assert.NotNil(t, prov)
}

func TestBuildAuthProvider_UnsupportedMode(t *testing.T) {
	t.Parallel()
	prov, err := BuildAuthProvider(config.AuthConfig{Mode: config.AuthMode("saml")})

	require.Error(t, err)
	assert.Nil(t, prov)
}
