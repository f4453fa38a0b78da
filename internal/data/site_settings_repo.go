package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/driftbox/driftbox/internal/data/pgxutil"
	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/ports"
)

// ErrSetupAlreadyComplete is returned when first-run setup is attempted twice.
var ErrSetupAlreadyComplete = ports.ErrSetupAlreadyComplete

// SiteSettingsRepo provides database operations for the per-deployment
// settings record.
type SiteSettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSiteSettingsRepo creates a new SiteSettingsRepo with real time provider.
func NewSiteSettingsRepo(db *sql.DB) *SiteSettingsRepo {
	return &SiteSettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSiteSettingsRepoWithTimeProvider creates a new SiteSettingsRepo with a custom time provider.
func NewSiteSettingsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SiteSettingsRepo {
	return &SiteSettingsRepo{DB: db, timeProvider: tp}
}

// Get returns the settings row for the site, or nil when none exists yet.
func (r *SiteSettingsRepo) Get(ctx context.Context, site string) (*model.SiteSettings, error) {
	var out model.SiteSettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT site, setup_complete, superadmin, allow_registration, updated_at
			FROM site_settings
			WHERE site = $1
		`, site)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SiteSettings])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return &out, nil
}

// CompleteSetup writes the settings row, flips setup_complete, and promotes
// the designated user to super admin, all inside one transaction so a failed
// promotion cannot leave setup half done. The WHERE guard on the conflict
// update makes a second call a no-op, which is reported as
// ErrSetupAlreadyComplete; an unknown superadmin rolls the whole write back
// and reports ErrUserNotFound.
func (r *SiteSettingsRepo) CompleteSetup(ctx context.Context, settings *model.SiteSettings) (*model.SiteSettings, error) {
	if settings == nil {
		return nil, errors.New("site settings are required")
	}
	if strings.TrimSpace(settings.Site) == "" {
		return nil, errors.New("site is required and cannot be empty")
	}
	superAdmin := strings.TrimSpace(settings.SuperAdmin)
	if superAdmin == "" {
		return nil, errors.New("superadmin is required and cannot be empty")
	}

	now := r.timeProvider.Now().UTC()

	var out model.SiteSettings
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO site_settings (site, setup_complete, superadmin, allow_registration, updated_at)
			VALUES ($1, TRUE, $2, $3, $4)
			ON CONFLICT (site) DO UPDATE SET
				setup_complete     = TRUE,
				superadmin         = EXCLUDED.superadmin,
				allow_registration = EXCLUDED.allow_registration,
				updated_at         = EXCLUDED.updated_at
			WHERE site_settings.setup_complete = FALSE
			RETURNING site, setup_complete, superadmin, allow_registration, updated_at
		`, settings.Site, superAdmin, settings.AllowRegistration, now)
		if err != nil {
			return err
		}
		// CollectOneRow closes rows, which must happen before the next
		// statement on this transaction.
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SiteSettings])
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE users SET role = $2, updated_at = $3 WHERE id = $1
		`, superAdmin, string(domainauth.RoleSuperAdmin), now)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ports.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict update was suppressed by the guard: setup already ran.
			return nil, ErrSetupAlreadyComplete
		}
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to complete site setup: %w", err)
	}
	return &out, nil
}
