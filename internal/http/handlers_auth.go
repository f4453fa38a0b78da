package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/driftbox/driftbox/internal/ports"
	"github.com/driftbox/driftbox/internal/service"
)

// AuthServiceInterface defines the auth service operations the HTTP layer uses.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	Validate(ctx context.Context, sessionID string) (*service.AuthedUser, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the login, callback, and logout flow.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies cookieWriter
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /auth/login?origin=<optional_url>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	// Already logged in: nothing to initiate.
	if authed := resolveSession(r, h.Svc); authed != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	result, err := h.Svc.BeginLogin(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin login failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     errors.New("failed to start login"),
		})
		return
	}

	h.Cookies.SetState(w, result.State)

	// The origin cookie is only written when the candidate passes validation
	// against this request. An invalid origin is silently dropped, not an error.
	if origin := r.URL.Query().Get("origin"); origin != "" && ValidOrigin(r, origin) {
		h.Cookies.SetOrigin(w, result.State, origin)
	}

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?state=<s>&code=<c>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Already logged in: the callback is idempotent.
	if authed := resolveSession(r, h.Svc); authed != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	stateCookie := readCookie(r, stateCookieName)

	// The state in the query must exactly match the cookie bound to this
	// browser. A mismatch or a missing piece ends the attempt here; the
	// transient cookies are cleared so a stale attempt can't linger.
	if state == "" || code == "" || stateCookie == "" || stateCookie != state {
		h.clearLoginCookies(w, state, stateCookie)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state or code parameter"),
		})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
	})
	if err != nil {
		h.clearLoginCookies(w, state, stateCookie)
		switch {
		case errors.Is(err, ports.ErrStateNotFound):
			// Already consumed (replay or concurrent callback): the first
			// consumer won, this request loses.
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_state",
				Err:     errors.New("login attempt expired or already used"),
			})
		case errors.Is(err, ports.ErrInvalidCode):
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_code",
				Err:     errors.New("authorization code rejected"),
			})
		default:
			h.logger().ErrorContext(r.Context(), "complete login failed", slog.Any("error", err))
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "login_completion_failed",
				Err:     errors.New("failed to complete login"),
			})
		}
		return
	}

	h.Cookies.SetSession(w, result.Session.ID, result.Session.ExpiresAt)
	h.clearLoginCookies(w, state, stateCookie)

	// Honor the stored origin only if it still validates against this
	// request; cookies are attacker-writable in some misconfigurations, so
	// issuance-time validation alone is not trusted.
	redirect := "/"
	if origin := readCookie(r, originCookieName(state)); origin != "" && ValidOrigin(r, origin) {
		redirect = origin
	}

	http.Redirect(w, r, redirect, http.StatusFound)
}

// clearLoginCookies expires the state cookie and any origin cookies from this
// attempt, on both the success and failure paths.
func (h *AuthHandlers) clearLoginCookies(w http.ResponseWriter, state, stateCookie string) {
	h.Cookies.Clear(w, stateCookieName)
	if state != "" {
		h.Cookies.Clear(w, originCookieName(state))
	}
	if stateCookie != "" && stateCookie != state {
		h.Cookies.Clear(w, originCookieName(stateCookie))
	}
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	authed := resolveSession(r, h.Svc)
	if authed == nil {
		// Plain body, no cookies touched: there is nothing to clear.
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Svc.Logout(r.Context(), authed.Session.ID); err != nil {
		h.logger().ErrorContext(r.Context(), "logout failed", slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "logout_failed",
			Err:     errors.New("failed to log out"),
		})
		return
	}

	h.Cookies.Clear(w, sessionCookieName)
	http.Redirect(w, r, "/", http.StatusFound)
}
