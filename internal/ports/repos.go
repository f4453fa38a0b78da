package ports

import (
	"context"
	"errors"

	"github.com/driftbox/driftbox/internal/domain/model"
)

// ErrUserNotFound is returned by user lookups when no user exists for the key.
var ErrUserNotFound = errors.New("user not found")

// ErrSetupAlreadyComplete is returned by CompleteSetup once setup has run.
var ErrSetupAlreadyComplete = errors.New("site setup already complete")

// UserRepository persists site members.
type UserRepository interface {
	// Upsert creates the user for a previously unseen external identity, or
	// refreshes username/avatar for a known one. Exactly one row per
	// external identity is guaranteed by the storage layer.
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListWithActivity(ctx context.Context) ([]*model.UserActivityRow, error)
	SetBanned(ctx context.Context, id string, banned bool) (*model.User, error)
}

// UploadRepository persists upload metadata.
type UploadRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateUploadRequest) (*model.Upload, error)
	Recent(ctx context.Context, limit int) ([]*model.RecentUpload, error)
	StatsByUser(ctx context.Context, userID string) (*model.UserUploadStats, error)
}

// RapSheetRepository persists moderation history entries.
type RapSheetRepository interface {
	Create(ctx context.Context, req *model.CreateRapSheetRequest) (*model.RapSheetEntry, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*model.RapSheetEntry, error)
}

// SiteSettingsRepository persists the per-deployment settings record.
type SiteSettingsRepository interface {
	// Get returns the settings row for the site, or nil when none exists yet.
	Get(ctx context.Context, site string) (*model.SiteSettings, error)
	// CompleteSetup writes the settings row, flips setup_complete, and
	// promotes the user named by settings.SuperAdmin to super admin in one
	// transaction. Setup runs at most once; a second call reports already
	// done, and an unknown superadmin reports ErrUserNotFound with nothing
	// written.
	CompleteSetup(ctx context.Context, settings *model.SiteSettings) (*model.SiteSettings, error)
}
