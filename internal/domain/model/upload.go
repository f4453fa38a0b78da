//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxFileNameLen    = 255
	maxContentTypeLen = 255
)

// Upload is one uploaded file's metadata. File bytes live outside this
// service; only the record needed for feeds and per-user stats is kept.
type Upload struct {
	ID          string    `json:"id"           db:"id"`
	UserID      string    `json:"user_id"      db:"user_id"`
	FileName    string    `json:"file_name"    db:"file_name"`
	SizeBytes   int64     `json:"size_bytes"   db:"size_bytes"`
	ContentType string    `json:"content_type" db:"content_type"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// CreateUploadRequest represents parameters to record an upload.
type CreateUploadRequest struct {
	FileName    string `json:"file_name"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type,omitempty"`
}

// Validate checks the create request fields.
func (r *CreateUploadRequest) Validate() error {
	if strings.TrimSpace(r.FileName) == "" {
		return errors.New("file name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.FileName) > maxFileNameLen {
		return errors.New("file name cannot exceed 255 characters")
	}
	if r.SizeBytes < 0 {
		return errors.New("size must be non-negative")
	}
	if utf8.RuneCountInString(r.ContentType) > maxContentTypeLen {
		return errors.New("content type cannot exceed 255 characters")
	}
	return nil
}

// RecentUpload is one entry of the recent-uploads feed: the upload joined
// with its uploader's display data.
type RecentUpload struct {
	ID        string    `json:"id"         db:"id"`
	FileName  string    `json:"file_name"  db:"file_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Username  string    `json:"username"   db:"username"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
}

// UserUploadStats aggregates a single user's upload activity.
type UserUploadStats struct {
	UploadCount  int64      `json:"upload_count"`
	LastUploadAt *time.Time `json:"last_upload_at,omitempty"`
	JoinedAt     time.Time  `json:"joined_at"`
}
