package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/driftbox/driftbox/internal/domain/model"
	apperrors "github.com/driftbox/driftbox/internal/errors"
	"github.com/driftbox/driftbox/internal/mocks"
	"github.com/driftbox/driftbox/internal/ports"
)

func newUploadService(t *testing.T) (*mocks.MockUploadRepository, *UploadService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uploads := mocks.NewMockUploadRepository(ctrl)
	service := NewUploadService(UploadServiceOptions{Uploads: uploads})

	return uploads, service
}

func TestUploadService_Record_Success(t *testing.T) {
	t.Parallel()
	uploads, service := newUploadService(t)

	ctx := context.Background()
	req := &model.CreateUploadRequest{
		FileName:    "vacation.png",
		SizeBytes:   2048,
		ContentType: "image/png",
	}
	expected := &model.Upload{
		ID:          "up-1",
		UserID:      "user-1",
		FileName:    "vacation.png",
		SizeBytes:   2048,
		ContentType: "image/png",
		CreatedAt:   time.Now(),
	}

	uploads.EXPECT().
		Create(ctx, "user-1", req).
		Return(expected, nil).
		Times(1)

	got, err := service.Record(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestUploadService_Record_NoUser(t *testing.T) {
	t.Parallel()
	_, service := newUploadService(t)

	got, err := service.Record(context.Background(), "", &model.CreateUploadRequest{FileName: "a.png"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestUploadService_Record_InvalidRequest(t *testing.T) {
	t.Parallel()
	_, service := newUploadService(t)

	ctx := context.Background()

	got, err := service.Record(ctx, "user-1", nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsValidation(err))

	got, err = service.Record(ctx, "user-1", &model.CreateUploadRequest{SizeBytes: 10})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsValidation(err))

	got, err = service.Record(ctx, "user-1", &model.CreateUploadRequest{FileName: "a.png", SizeBytes: -1})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUploadService_Recent(t *testing.T) {
	t.Parallel()
	uploads, service := newUploadService(t)

	ctx := context.Background()
	feed := []*model.RecentUpload{
		{ID: "up-2", FileName: "newer.png", Username: "alice"},
		{ID: "up-1", FileName: "older.png", Username: "bob"},
	}

	uploads.EXPECT().
		Recent(ctx, 0).
		Return(feed, nil).
		Times(1)

	got, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, feed, got)
}

func TestUploadService_StatsFor_Success(t *testing.T) {
	t.Parallel()
	uploads, service := newUploadService(t)

	ctx := context.Background()
	last := time.Now()
	stats := &model.UserUploadStats{
		UploadCount:  7,
		LastUploadAt: &last,
		JoinedAt:     last.Add(-24 * time.Hour),
	}

	uploads.EXPECT().
		StatsByUser(ctx, "user-1").
		Return(stats, nil).
		Times(1)

	got, err := service.StatsFor(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestUploadService_StatsFor_NoUser(t *testing.T) {
	t.Parallel()
	_, service := newUploadService(t)

	got, err := service.StatsFor(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestUploadService_StatsFor_UnknownUser(t *testing.T) {
	t.Parallel()
	uploads, service := newUploadService(t)

	ctx := context.Background()
	uploads.EXPECT().
		StatsByUser(ctx, "missing").
		Return(nil, ports.ErrUserNotFound).
		Times(1)

	got, err := service.StatsFor(ctx, "missing")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNotFound(err))
}
