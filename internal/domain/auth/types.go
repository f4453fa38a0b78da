package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// roleRank orders roles for hierarchy checks: user < admin < superadmin.
func roleRank(r Role) (int, bool) {
	switch r {
	case RoleUser:
		return 0, true
	case RoleAdmin:
		return 1, true
	case RoleSuperAdmin:
		return 2, true
	default:
		return 0, false
	}
}

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	_, ok := roleRank(r)
	return ok
}

// AtLeast reports whether the role meets or exceeds the required role.
// Unknown roles on either side never satisfy the check.
func (r Role) AtLeast(required Role) bool {
	have, ok := roleRank(r)
	if !ok {
		return false
	}
	want, ok := roleRank(required)
	if !ok {
		return false
	}
	return have >= want
}

// DisplayName returns the human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// Identity represents the authenticated principal returned by an identity provider.
// Adapters map provider-specific payloads into this shape.
type Identity struct {
	ExternalID string // stable provider-side identifier (e.g., Discord user id or OIDC sub)
	Username   string
	AvatarURL  string
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// LoginState is the server-side record of one in-flight login attempt,
// keyed by the anti-CSRF state token issued to the browser. It is single
// use: the store consumes it atomically on callback so a replayed state
// token fails instead of racing the code exchange.
type LoginState struct {
	State     string    `json:"state"`
	Nonce     string    `json:"nonce,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
