//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxRapSheetReasonLen = 1000

// RapSheetAction is the kind of moderation action recorded in a rap sheet entry.
type RapSheetAction string

const (
	RapSheetActionBan   RapSheetAction = "ban"
	RapSheetActionUnban RapSheetAction = "unban"
)

// Valid reports whether the action is supported.
func (a RapSheetAction) Valid() bool {
	switch a {
	case RapSheetActionBan, RapSheetActionUnban:
		return true
	default:
		return false
	}
}

// RapSheetEntry is one record of a user's moderation history, linking the
// issuing moderator and the recipient. Entries are append-only.
type RapSheetEntry struct {
	ID          string         `json:"id"           db:"id"`
	RecipientID string         `json:"recipient_id" db:"recipient_id"`
	IssuerID    string         `json:"issuer_id"    db:"issuer_id"`
	Action      RapSheetAction `json:"action"       db:"action"`
	Reason      string         `json:"reason"       db:"reason"`
	CreatedAt   time.Time      `json:"created_at"   db:"created_at"`
}

// CreateRapSheetRequest represents parameters to append a rap sheet entry.
type CreateRapSheetRequest struct {
	RecipientID string         `json:"recipient_id"`
	IssuerID    string         `json:"issuer_id"`
	Action      RapSheetAction `json:"action"`
	Reason      string         `json:"reason,omitempty"`
}

// Validate checks the create request fields.
func (r *CreateRapSheetRequest) Validate() error {
	if strings.TrimSpace(r.RecipientID) == "" {
		return errors.New("recipient id is required and cannot be empty")
	}
	if strings.TrimSpace(r.IssuerID) == "" {
		return errors.New("issuer id is required and cannot be empty")
	}
	if !r.Action.Valid() {
		return errors.New("action must be one of: ban, unban")
	}
	if utf8.RuneCountInString(r.Reason) > maxRapSheetReasonLen {
		return errors.New("reason cannot exceed 1000 characters")
	}
	return nil
}
