package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.AuthProvider
	Sessions   ports.SessionStore
	States     ports.StateStore
	Users      ports.UserRepository
	SessionTTL time.Duration
}

// AuthService orchestrates authentication flows: it coordinates the identity
// provider, the single-use login-state store, user persistence, and session
// persistence.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	states     ports.StateStore
	users      ports.UserRepository
	sessionTTL time.Duration
}

const defaultSessionTTL = 30 * 24 * time.Hour

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		states:     opts.States,
		users:      opts.Users,
		sessionTTL: ttl,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
}

// BeginLogin initiates an authentication flow. The state token is recorded
// server-side so the callback can consume it exactly once.
func (s *AuthService) BeginLogin(ctx context.Context) (*BeginLoginResult, error) {
	begin, err := s.provider.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	if saveErr := s.states.Save(ctx, domainauth.LoginState{
		State:     begin.State,
		Nonce:     begin.Nonce,
		CreatedAt: time.Now(),
	}); saveErr != nil {
		return nil, fmt.Errorf("save login state: %w", saveErr)
	}

	return &BeginLoginResult{
		AuthURL: begin.AuthURL,
		State:   begin.State,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
	User    *model.User
}

// CompleteLogin finishes an authentication flow. The state token is consumed
// atomically before the code exchange, so a replayed or concurrent callback
// with the same token fails with ports.ErrStateNotFound instead of racing the
// exchange. On success the user row is created or refreshed and a session is
// persisted.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}

	st, err := s.states.Consume(ctx, input.State)
	if err != nil {
		if errors.Is(err, ports.ErrStateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("consume login state: %w", err)
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		Nonce: st.Nonce,
	})
	if err != nil {
		// ErrInvalidCode passes through for the handler to map to a client error.
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	user, err := s.users.Upsert(ctx, &model.UpsertUserRequest{
		ExternalID: identity.ExternalID,
		Username:   identity.Username,
		AvatarURL:  identity.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	now := time.Now()
	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{
		Session: session,
		User:    user,
	}, nil
}

// AuthedUser pairs a live session with the owning user's current attributes.
type AuthedUser struct {
	Session domainauth.Session
	User    *model.User
}

// Validate resolves a session ID to the session and its user. A missing,
// expired, or orphaned session yields (nil, nil): no session is a normal
// outcome, not an error. Validate never mutates state beyond expired-session
// cleanup and is safe to call several times per request.
func (s *AuthService) Validate(ctx context.Context, sessionID string) (*AuthedUser, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, fmt.Errorf("delete expired session: %w", deleteErr)
		}
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			// Session points at a deleted user; treat as signed out.
			return nil, nil
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}

	return &AuthedUser{Session: session, User: user}, nil
}

// Logout removes a session. Unknown session IDs are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
