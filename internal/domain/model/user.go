//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
)

const (
	maxUsernameLen = 100
	maxAvatarLen   = 2048
)

// User represents a member of the site, created on first successful login.
type User struct {
	ID         string          `json:"id"          db:"id"`
	ExternalID string          `json:"external_id" db:"external_id"`
	Username   string          `json:"username"    db:"username"`
	AvatarURL  string          `json:"avatar_url"  db:"avatar_url"`
	Role       domainauth.Role `json:"role"        db:"role"`
	Banned     bool            `json:"banned"      db:"banned"`
	JoinedAt   time.Time       `json:"joined_at"   db:"joined_at"`
	UpdatedAt  time.Time       `json:"updated_at"  db:"updated_at"`
}

// UpsertUserRequest carries the fresh identity data applied on every login.
// A previously unseen external identity creates a new user; a known one only
// refreshes username and avatar.
type UpsertUserRequest struct {
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	AvatarURL  string `json:"avatar_url"`
}

// Validate checks the upsert request fields.
func (r *UpsertUserRequest) Validate() error {
	if strings.TrimSpace(r.ExternalID) == "" {
		return errors.New("external id is required and cannot be empty")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Username) > maxUsernameLen {
		return errors.New("username cannot exceed 100 characters")
	}
	if len(r.AvatarURL) > maxAvatarLen {
		return errors.New("avatar URL cannot exceed 2048 characters")
	}
	return nil
}

// UserActivityRow is one row of the user-management table: the user plus
// upload activity aggregates.
type UserActivityRow struct {
	ID           string          `json:"id"                       db:"id"`
	Username     string          `json:"username"                 db:"username"`
	AvatarURL    string          `json:"avatar_url"               db:"avatar_url"`
	Role         domainauth.Role `json:"role"                     db:"role"`
	Banned       bool            `json:"banned"                   db:"banned"`
	JoinedAt     time.Time       `json:"joined_at"                db:"joined_at"`
	UploadCount  int64           `json:"upload_count"             db:"upload_count"`
	LastUploadID *string         `json:"last_upload_id,omitempty" db:"last_upload_id"`
	LastUploadAt *time.Time      `json:"last_upload_at,omitempty" db:"last_upload_at"`
}
