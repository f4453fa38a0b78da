package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth returns a middleware that resolves the session cookie when one
// is present and attaches the authenticated user to the request context.
// Unauthenticated requests continue untouched.
func OptionalAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authed := resolveSession(r, authSvc); authed != nil {
				r = r.WithContext(SetAuthedUserInContext(r.Context(), authed))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns a middleware that requires a valid session. It does
// not check the banned flag, so endpoints behind it (the /api/me surface) can
// show a banned user their own state.
func RequireSession(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authed := resolveSession(r, authSvc)
			if authed == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetAuthedUserInContext(r.Context(), authed)))
		})
	}
}

// RequireActiveUser is RequireSession plus a ban check: banned users still
// authenticate, but the protected API rejects them with 403.
func RequireActiveUser(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return requireUser(authSvc, func(authed *service.AuthedUser) error {
		if authed.User.Banned {
			return errors.New("account is banned")
		}
		return nil
	})
}

// RequireRole returns a middleware that requires the user's role to meet or
// exceed the given role. Banned users are rejected regardless of role.
func RequireRole(authSvc AuthServiceInterface, required domainauth.Role) func(http.Handler) http.Handler {
	return requireUser(authSvc, func(authed *service.AuthedUser) error {
		if authed.User.Banned {
			return errors.New("account is banned")
		}
		if !authed.User.Role.AtLeast(required) {
			return errors.New("insufficient permissions")
		}
		return nil
	})
}

func requireUser(
	authSvc AuthServiceInterface,
	check func(*service.AuthedUser) error,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authed := resolveSession(r, authSvc)
			if authed == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if err := check(authed); err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     err,
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetAuthedUserInContext(r.Context(), authed)))
		})
	}
}

// resolveSession resolves the session cookie to an authenticated user, or nil.
// Validation never mutates beyond expired-session cleanup, so middleware and
// handlers may both call it within one request.
func resolveSession(r *http.Request, authSvc AuthServiceInterface) *service.AuthedUser {
	if authed, ok := AuthedUserFromContext(r.Context()); ok {
		return authed
	}

	sessionID := readCookie(r, sessionCookieName)
	if sessionID == "" {
		return nil
	}

	authed, err := authSvc.Validate(r.Context(), sessionID)
	if err != nil {
		return nil
	}
	return authed
}
