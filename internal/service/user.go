package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/domain/model"
	apperrors "github.com/driftbox/driftbox/internal/errors"
	"github.com/driftbox/driftbox/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users     ports.UserRepository
	RapSheets ports.RapSheetRepository
}

// UserService orchestrates user management: the admin table, ban/unban with
// moderation history, and per-user lookups.
type UserService struct {
	users     ports.UserRepository
	rapSheets ports.RapSheetRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		users:     opts.Users,
		rapSheets: opts.RapSheets,
	}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return user, nil
}

// ListWithActivity returns the admin user table rows.
func (s *UserService) ListWithActivity(ctx context.Context) ([]*model.UserActivityRow, error) {
	rows, err := s.users.ListWithActivity(ctx)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return rows, nil
}

// BanInput groups parameters for a ban or unban.
type BanInput struct {
	Issuer      *model.User
	RecipientID string
	Reason      string
}

// Ban flags a user as banned and appends a ban entry to their rap sheet.
// Moderators cannot ban themselves or a superadmin.
func (s *UserService) Ban(ctx context.Context, in BanInput) (*model.User, error) {
	return s.moderate(ctx, in, model.RapSheetActionBan)
}

// Unban clears the banned flag and appends an unban entry to the rap sheet.
func (s *UserService) Unban(ctx context.Context, in BanInput) (*model.User, error) {
	return s.moderate(ctx, in, model.RapSheetActionUnban)
}

func (s *UserService) moderate(ctx context.Context, in BanInput, action model.RapSheetAction) (*model.User, error) {
	if in.Issuer == nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	if in.RecipientID == "" {
		return nil, apperrors.ValidationField("id", "recipient id is required")
	}
	if in.RecipientID == in.Issuer.ID {
		return nil, apperrors.Forbidden("you cannot moderate yourself")
	}

	recipient, err := s.users.GetByID(ctx, in.RecipientID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	if recipient.Role == domainauth.RoleSuperAdmin {
		return nil, apperrors.Forbidden("super admins cannot be moderated")
	}

	updated, err := s.users.SetBanned(ctx, recipient.ID, action == model.RapSheetActionBan)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	if _, rsErr := s.rapSheets.Create(ctx, &model.CreateRapSheetRequest{
		RecipientID: recipient.ID,
		IssuerID:    in.Issuer.ID,
		Action:      action,
		Reason:      in.Reason,
	}); rsErr != nil {
		return nil, fmt.Errorf("record rap sheet entry: %w", apperrors.MapDBError(rsErr))
	}

	return updated, nil
}

// RapSheet returns a user's moderation history, newest first.
func (s *UserService) RapSheet(ctx context.Context, recipientID string) ([]*model.RapSheetEntry, error) {
	if recipientID == "" {
		return nil, apperrors.ValidationField("id", "recipient id is required")
	}

	// Surface 404 for unknown users instead of an empty history.
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}

	entries, err := s.rapSheets.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return entries, nil
}
