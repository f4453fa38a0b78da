package httpx

import (
	"net/http"
	"net/url"
	"strings"
)

// maxOriginLen caps origin candidates to keep parse cost and cookie sizes bounded.
const maxOriginLen = 2048

// effectiveProto computes the scheme the client actually used: "https" when
// the request terminated TLS here or a proxy forwarded it as HTTPS, else "http".
func effectiveProto(r *http.Request) string {
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return "https"
	}
	return "http"
}

// canonicalHost strips the scheme's default port so "good.com:443" and
// "good.com" compare equal over https. Non-default ports stay significant.
func canonicalHost(host, scheme string) string {
	switch scheme {
	case "https":
		return strings.TrimSuffix(host, ":443")
	case "http":
		return strings.TrimSuffix(host, ":80")
	}
	return host
}

// ValidOrigin reports whether candidate is a safe post-login redirect target
// for this request: an absolute URL whose scheme equals the request's
// effective protocol and whose host matches the request host, with the
// scheme's default port treated as equal to no port. No wildcard or
// subdomain matching. Pure predicate.
func ValidOrigin(r *http.Request, candidate string) bool {
	if candidate == "" || len(candidate) > maxOriginLen {
		return false
	}

	u, err := url.Parse(candidate)
	if err != nil || !u.IsAbs() {
		return false
	}

	proto := effectiveProto(r)
	return u.Scheme == proto && canonicalHost(u.Host, proto) == canonicalHost(r.Host, proto)
}
