package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/ports"
	"github.com/driftbox/driftbox/internal/service"
)

// mockAuthService is a test double for the auth service.
type mockAuthService struct {
	beginLoginFunc    func(ctx context.Context) (*service.BeginLoginResult, error)
	completeLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	validateFunc      func(ctx context.Context, sessionID string) (*service.AuthedUser, error)
	logoutFunc        func(ctx context.Context, sessionID string) error

	completeLoginCalls int
}

func (m *mockAuthService) BeginLogin(ctx context.Context) (*service.BeginLoginResult, error) {
	if m.beginLoginFunc != nil {
		return m.beginLoginFunc(ctx)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://discord.com/oauth2/authorize?state=test-state",
		State:   "test-state",
	}, nil
}

func (m *mockAuthService) CompleteLogin(
	ctx context.Context,
	input service.CompleteLoginInput,
) (*service.CompleteLoginResult, error) {
	m.completeLoginCalls++
	if m.completeLoginFunc != nil {
		return m.completeLoginFunc(ctx, input)
	}
	return &service.CompleteLoginResult{
		Session: domainauth.Session{
			ID:        "test-session-id",
			UserID:    "user-1",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		},
		User: &model.User{ID: "user-1", Username: "alice"},
	}, nil
}

func (m *mockAuthService) Validate(ctx context.Context, sessionID string) (*service.AuthedUser, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

// activeSessionFor returns a validateFunc resolving every session ID to the
// given user.
func activeSessionFor(user *model.User) func(context.Context, string) (*service.AuthedUser, error) {
	return func(_ context.Context, sessionID string) (*service.AuthedUser, error) {
		return &service.AuthedUser{
			Session: domainauth.Session{
				ID:        sessionID,
				UserID:    user.ID,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			User: user,
		}, nil
	}
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	resp := w.Result()
	defer resp.Body.Close()
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandlers_Login_SetsStateCookie(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://discord.com/oauth2/authorize?state=test-state", w.Header().Get("Location"))

	// The state cookie must carry the same token the provider URL carries.
	stateCookie := findCookie(t, w, "oauth_state")
	require.NotNil(t, stateCookie)
	assert.Equal(t, "test-state", stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
	assert.Equal(t, oauthCookieMaxAge, stateCookie.MaxAge)
}

func TestAuthHandlers_Login_ValidOriginStored(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?origin=http://example.com/files", nil)
	req.Host = "example.com"
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	originCookie := findCookie(t, w, "oauth_origin_test-state")
	require.NotNil(t, originCookie)
	assert.Equal(t, "http://example.com/files", originCookie.Value)
}

func TestAuthHandlers_Login_InvalidOriginSilentlyDropped(t *testing.T) {
	t.Parallel()
	for _, origin := range []string{
		"http://evil.com/files",
		"https://example.com/files", // wrong scheme for a plain-http request
		"/relative",
	} {
		mockSvc := &mockAuthService{}
		handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

		req := httptest.NewRequest(http.MethodGet, "/auth/login?origin="+origin, nil)
		req.Host = "example.com"
		w := httptest.NewRecorder()

		handlers.Login(w, req)

		// Still a success: the bad origin is dropped, not an error.
		assert.Equal(t, http.StatusFound, w.Code)
		assert.NotNil(t, findCookie(t, w, "oauth_state"))
		assert.Nil(t, findCookie(t, w, "oauth_origin_test-state"), "origin %q must not be stored", origin)
	}
}

func TestAuthHandlers_Login_ExistingSessionShortCircuits(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{validateFunc: activeSessionFor(&model.User{ID: "user-1"})}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, findCookie(t, w, "oauth_state"))
}

func TestAuthHandlers_Login_BeginError(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{
		beginLoginFunc: func(context.Context) (*service.BeginLoginResult, error) {
			return nil, errors.New("redis: connection refused")
		},
	}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Storage details must never reach the client.
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestAuthHandlers_Callback_Success(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 1, mockSvc.completeLoginCalls)

	sessionCookie := findCookie(t, w, "session_id")
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "test-session-id", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	// The transient state cookie is always cleared.
	stateCookie := findCookie(t, w, "oauth_state")
	require.NotNil(t, stateCookie)
	assert.Empty(t, stateCookie.Value)
	assert.Negative(t, stateCookie.MaxAge)
}

func TestAuthHandlers_Callback_HonorsValidOriginCookie(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.Host = "example.com"
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: "oauth_origin_test-state", Value: "http://example.com/files/42"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://example.com/files/42", w.Header().Get("Location"))

	// The origin cookie is cleared along with the state cookie.
	originCookie := findCookie(t, w, "oauth_origin_test-state")
	require.NotNil(t, originCookie)
	assert.Negative(t, originCookie.MaxAge)
}

func TestAuthHandlers_Callback_RevalidatesOriginCookie(t *testing.T) {
	t.Parallel()
	// The cookie was tampered with after issuance; re-validation fails and
	// the redirect falls back to "/".
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.Host = "example.com"
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: "oauth_origin_test-state", Value: "http://evil.com/phish"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		target string
		cookie string
	}{
		{"mismatched state", "/auth/callback?state=forged&code=test-code", "test-state"},
		{"missing state", "/auth/callback?code=test-code", "test-state"},
		{"missing code", "/auth/callback?state=test-state", "test-state"},
		{"missing cookie", "/auth/callback?state=test-state&code=test-code", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockAuthService{}
			handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "oauth_state", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			handlers.Callback(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			// No exchange, no session.
			assert.Equal(t, 0, mockSvc.completeLoginCalls)
			assert.Nil(t, findCookie(t, w, "session_id"))
		})
	}
}

func TestAuthHandlers_Callback_ConsumedStateRejected(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{
		completeLoginFunc: func(context.Context, service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, ports.ErrStateNotFound
		},
	}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, findCookie(t, w, "session_id"))
}

func TestAuthHandlers_Callback_InvalidCode(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{
		completeLoginFunc: func(context.Context, service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, ports.ErrInvalidCode
		},
	}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=expired", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_code")

	// The state cookie is cleared even on failure.
	stateCookie := findCookie(t, w, "oauth_state")
	require.NotNil(t, stateCookie)
	assert.Negative(t, stateCookie.MaxAge)
}

func TestAuthHandlers_Callback_InternalErrorHidesDetails(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{
		completeLoginFunc: func(context.Context, service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, errors.New("pq: connection reset by peer")
		},
	}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestAuthHandlers_Callback_ExistingSessionShortCircuits(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{validateFunc: activeSessionFor(&model.User{ID: "user-1"})}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state&code=test-code", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 0, mockSvc.completeLoginCalls)
}

func TestAuthHandlers_Logout_NoSession(t *testing.T) {
	t.Parallel()
	mockSvc := &mockAuthService{}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized\n", w.Body.String())

	resp := w.Result()
	defer resp.Body.Close()
	assert.Empty(t, resp.Cookies())
}

func TestAuthHandlers_Logout_Success(t *testing.T) {
	t.Parallel()
	var invalidated string
	mockSvc := &mockAuthService{
		validateFunc: activeSessionFor(&model.User{ID: "user-1"}),
		logoutFunc: func(_ context.Context, sessionID string) error {
			invalidated = sessionID
			return nil
		},
	}
	handlers := &AuthHandlers{Svc: mockSvc, Cookies: cookieWriter{Insecure: true}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "sess-1", invalidated)

	sessionCookie := findCookie(t, w, "session_id")
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)
}
