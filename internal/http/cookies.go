package httpx

import (
	"net/http"
	"time"
)

// Cookie names. The per-state origin cookie is logically a client-side map
// {state token -> origin URL}; originCookieName is the only place the key is
// built, so call sites never concatenate the prefix themselves.
const (
	stateCookieName    = "oauth_state"
	originCookiePrefix = "oauth_origin_"
	sessionCookieName  = "session_id"

	// oauthCookieMaxAge bounds one login attempt; state and origin cookies
	// share it and are cleared together on callback.
	oauthCookieMaxAge = 3600
)

// originCookieName returns the name of the origin cookie keyed by the given
// state token.
func originCookieName(state string) string {
	return originCookiePrefix + state
}

// cookieWriter centralizes cookie attributes (domain, secure flag) so every
// cookie this server sets carries the same policy.
type cookieWriter struct {
	// Domain is the cookie domain; empty means the request host.
	Domain string
	// Insecure drops the Secure attribute for local development over plain HTTP.
	Insecure bool
}

func (c cookieWriter) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   !c.Insecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// SetState writes the anti-CSRF state cookie for one login attempt.
func (c cookieWriter) SetState(w http.ResponseWriter, state string) {
	c.set(w, stateCookieName, state, oauthCookieMaxAge)
}

// SetOrigin stores the already-validated origin URL keyed by the state token.
func (c cookieWriter) SetOrigin(w http.ResponseWriter, state, origin string) {
	c.set(w, originCookieName(state), origin, oauthCookieMaxAge)
}

// SetSession writes the session cookie, expiring alongside the server-side session.
func (c cookieWriter) SetSession(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	c.set(w, sessionCookieName, sessionID, int(time.Until(expiresAt).Seconds()))
}

// Clear expires a cookie immediately, mirroring the attributes used when
// setting it so browsers actually delete it.
func (c cookieWriter) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   !c.Insecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// readCookie returns the named cookie's value, or "" when absent.
func readCookie(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
