package service

import (
	"context"
	"errors"

	"github.com/driftbox/driftbox/internal/domain/model"
	apperrors "github.com/driftbox/driftbox/internal/errors"
	"github.com/driftbox/driftbox/internal/ports"
)

// SiteServiceOptions groups dependencies for SiteService.
type SiteServiceOptions struct {
	Settings ports.SiteSettingsRepository
	Users    ports.UserRepository
	// Domain is the configured site domain keying the settings row.
	Domain string
}

// SiteService orchestrates the per-deployment settings record and first-run setup.
type SiteService struct {
	settings ports.SiteSettingsRepository
	users    ports.UserRepository
	domain   string
}

// NewSiteService constructs a new SiteService.
func NewSiteService(opts SiteServiceOptions) *SiteService {
	return &SiteService{
		settings: opts.Settings,
		users:    opts.Users,
		domain:   opts.Domain,
	}
}

// Domain returns the configured site domain.
func (s *SiteService) Domain() string {
	return s.domain
}

// Settings returns the settings row for the configured site, or nil before
// first-run setup has happened.
func (s *SiteService) Settings(ctx context.Context) (*model.SiteSettings, error) {
	settings, err := s.settings.Get(ctx, s.domain)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return settings, nil
}

// Setup completes first-run setup: it records the settings row, marks setup
// complete, and promotes the user named in the request to super admin. The
// store performs the settings write and the promotion atomically, so a failed
// promotion never strands a deployment with setup marked done. Setup runs at
// most once; later calls fail with a conflict.
func (s *SiteService) Setup(ctx context.Context, req *model.SetupSiteRequest) (*model.SiteSettings, error) {
	if req == nil {
		return nil, apperrors.Validation("setup request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	admin, err := s.users.GetByUsername(ctx, req.SuperAdmin)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, apperrors.ValidationField("superadmin", "designated super admin does not exist")
		}
		return nil, apperrors.MapDBError(err)
	}

	saved, err := s.settings.CompleteSetup(ctx, &model.SiteSettings{
		Site:              s.domain,
		SuperAdmin:        admin.ID,
		AllowRegistration: req.AllowRegistration,
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrSetupAlreadyComplete):
			return nil, apperrors.Conflict("site setup already complete")
		case errors.Is(err, ports.ErrUserNotFound):
			// The designated user disappeared between lookup and write.
			return nil, apperrors.ValidationField("superadmin", "designated super admin does not exist")
		default:
			return nil, apperrors.MapDBError(err)
		}
	}

	return saved, nil
}
