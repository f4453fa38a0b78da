//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// SiteSettings is the single per-deployment settings record, keyed by the
// configured site domain. SetupComplete flips to true exactly once, during
// first-run setup.
type SiteSettings struct {
	Site              string    `json:"site"               db:"site"`
	SetupComplete     bool      `json:"setup_complete"     db:"setup_complete"`
	SuperAdmin        string    `json:"superadmin"         db:"superadmin"`
	AllowRegistration bool      `json:"allow_registration" db:"allow_registration"`
	UpdatedAt         time.Time `json:"updated_at"         db:"updated_at"`
}

// SetupSiteRequest represents the first-run setup submission. SuperAdmin is
// the username of an existing user to promote.
type SetupSiteRequest struct {
	SuperAdmin        string `json:"superadmin"`
	AllowRegistration bool   `json:"allow_registration"`
}

// Validate checks the setup request fields.
func (r *SetupSiteRequest) Validate() error {
	if strings.TrimSpace(r.SuperAdmin) == "" {
		return errors.New("superadmin username is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.SuperAdmin) > maxUsernameLen {
		return errors.New("superadmin username cannot exceed 100 characters")
	}
	return nil
}
