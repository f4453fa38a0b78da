package service

import (
	"context"
	"errors"

	"github.com/driftbox/driftbox/internal/domain/model"
	apperrors "github.com/driftbox/driftbox/internal/errors"
	"github.com/driftbox/driftbox/internal/ports"
)

// UploadServiceOptions groups dependencies for UploadService.
type UploadServiceOptions struct {
	Uploads ports.UploadRepository
}

// UploadService orchestrates upload records: the recent feed and per-user stats.
type UploadService struct {
	uploads ports.UploadRepository
}

// NewUploadService constructs a new UploadService.
func NewUploadService(opts UploadServiceOptions) *UploadService {
	return &UploadService{uploads: opts.Uploads}
}

// Record persists an upload's metadata for a user.
func (s *UploadService) Record(ctx context.Context, userID string, req *model.CreateUploadRequest) (*model.Upload, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	if req == nil {
		return nil, apperrors.Validation("upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	up, err := s.uploads.Create(ctx, userID, req)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return up, nil
}

// Recent returns the newest uploads with uploader display data. A
// non-positive limit falls back to the front page feed size.
func (s *UploadService) Recent(ctx context.Context, limit int) ([]*model.RecentUpload, error) {
	feed, err := s.uploads.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return feed, nil
}

// StatsFor aggregates a user's upload activity.
func (s *UploadService) StatsFor(ctx context.Context, userID string) (*model.UserUploadStats, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	stats, err := s.uploads.StatsByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return stats, nil
}
