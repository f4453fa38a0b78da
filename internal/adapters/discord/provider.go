package discord

// Package discord implements the AuthProvider port against Discord's OAuth2
// endpoints. Discord is plain OAuth2 (no OIDC discovery, no id_token); the
// identity comes from the /users/@me API resource.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/ports"
	"golang.org/x/oauth2"
)

const (
	defaultAPIBaseURL = "https://discord.com/api"
	defaultAuthURL    = "https://discord.com/oauth2/authorize"
	cdnBaseURL        = "https://cdn.discordapp.com"
)

// Provider implements the AuthProvider interface using Discord OAuth2.
type Provider struct {
	config     *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

// ProviderConfig holds configuration for the Discord provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	APIBaseURL   string       // Optional, defaults to the public Discord API (tests point this at a stub)
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new Discord provider.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	apiBase := strings.TrimSuffix(config.APIBaseURL, "/")
	authURL := defaultAuthURL
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	} else {
		authURL = apiBase + "/oauth2/authorize"
	}

	scope := config.Scope
	if scope == "" {
		scope = "identify"
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       strings.Fields(scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBaseURL: apiBase,
		httpClient: httpClient,
	}, nil
}

// Begin returns the Discord authorization URL and a fresh unguessable state token.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := generateRandomString(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	return ports.BeginResult{AuthURL: authURL, State: state}, nil
}

// Exchange trades the authorization code for the Discord identity.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		if isCodeRejection(err) {
			return domainauth.Identity{}, fmt.Errorf("%w: %v", ports.ErrInvalidCode, err)
		}
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	user, err := p.fetchUser(ctx, token.AccessToken)
	if err != nil {
		return domainauth.Identity{}, err
	}

	return domainauth.Identity{
		ExternalID: user.ID,
		Username:   user.displayName(),
		AvatarURL:  user.avatarURL(),
	}, nil
}

// isCodeRejection reports whether a token-endpoint error means the code
// itself was rejected (4xx), as opposed to a provider outage.
func isCodeRejection(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return false
	}
	if retrieveErr.Response == nil {
		return true
	}
	return retrieveErr.Response.StatusCode < http.StatusInternalServerError
}

// discordUser is the subset of the /users/@me resource we consume.
type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// displayName prefers the display name Discord introduced with unique
// usernames, falling back to the login name.
func (u discordUser) displayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// avatarURL constructs the CDN avatar URL from the user's avatar hash.
func (u discordUser) avatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return cdnBaseURL + "/avatars/" + u.ID + "/" + u.Avatar + ".png"
}

func (p *Provider) fetchUser(ctx context.Context, accessToken string) (*discordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// body close failure is best-effort and ignored
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch user: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var user discordUser
	if decodeErr := json.NewDecoder(resp.Body).Decode(&user); decodeErr != nil {
		return nil, fmt.Errorf("decode user: %w", decodeErr)
	}
	if user.ID == "" {
		return nil, errors.New("user response missing id")
	}
	return &user, nil
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least 'length' base64 URL-safe chars
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
