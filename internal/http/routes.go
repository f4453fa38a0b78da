package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    AuthServiceInterface
	Users   *service.UserService
	Uploads *service.UploadService
	Site    *service.SiteService

	// CookieDomain is the domain for cookies; empty means the request host.
	CookieDomain string
	// InsecureCookies drops the Secure cookie attribute for dev over plain HTTP.
	InsecureCookies bool
	Logger          *slog.Logger
}

// NewRouter creates and configures the HTTP router. Method-qualified mux
// patterns give the 405 behavior on wrong methods for free.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	cookies := cookieWriter{Domain: services.CookieDomain, Insecure: services.InsecureCookies}
	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: cookies, Logger: services.Logger}
	userHandlers := &UserHandlers{Users: services.Users, Uploads: services.Uploads, Logger: services.Logger}
	uploadHandlers := &UploadHandlers{Svc: services.Uploads, Logger: services.Logger}
	siteHandlers := &SiteHandlers{Svc: services.Site, Logger: services.Logger}

	// The auth endpoints work with or without a session: an existing one
	// short-circuits login and callback, and logout needs it to know what to
	// clear. OptionalAuth resolves the cookie once; the handlers read the
	// result from the request context.
	optional := OptionalAuth(services.Auth)
	mux.Handle("GET /auth/login", optional(http.HandlerFunc(authHandlers.Login)))
	mux.Handle("GET /auth/callback", optional(http.HandlerFunc(authHandlers.Callback)))
	mux.Handle("POST /auth/logout", optional(http.HandlerFunc(authHandlers.Logout)))

	// The /api/me surface stays reachable for banned users so they can see
	// their own state; everything else behind the API rejects them.
	session := RequireSession(services.Auth)
	active := RequireActiveUser(services.Auth)
	admin := RequireRole(services.Auth, domainauth.RoleAdmin)

	mux.Handle("GET /api/me", session(http.HandlerFunc(userHandlers.Me)))
	mux.Handle("GET /api/me/stats", session(http.HandlerFunc(userHandlers.MeStats)))

	mux.Handle("GET /api/users", admin(http.HandlerFunc(userHandlers.List)))
	mux.Handle("POST /api/users/{id}/ban", admin(http.HandlerFunc(userHandlers.Ban)))
	mux.Handle("POST /api/users/{id}/unban", admin(http.HandlerFunc(userHandlers.Unban)))
	mux.Handle("GET /api/users/{id}/rap-sheet", admin(http.HandlerFunc(userHandlers.RapSheet)))

	mux.Handle("GET /api/uploads/recent", active(http.HandlerFunc(uploadHandlers.Recent)))
	mux.Handle("POST /api/uploads", active(http.HandlerFunc(uploadHandlers.Record)))

	mux.Handle("GET /api/site/settings", active(http.HandlerFunc(siteHandlers.Settings)))
	mux.Handle("POST /api/site/setup", active(http.HandlerFunc(siteHandlers.Setup)))

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}
