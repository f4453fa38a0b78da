package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/testutil"
)

func TestUploadRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUploadRepo(db)
		u := createTestUser(t, db, "uploader")

		up, err := repo.Create(ctx, u.ID, &model.CreateUploadRequest{
			FileName:    "photo.png",
			SizeBytes:   2048,
			ContentType: "image/png",
		})
		require.NoError(t, err)
		require.NotEmpty(t, up.ID)
		assert.Equal(t, u.ID, up.UserID)
		assert.Equal(t, "photo.png", up.FileName)
		assert.EqualValues(t, 2048, up.SizeBytes)
		assert.Equal(t, "image/png", up.ContentType)
		assert.NotZero(t, up.CreatedAt)
	})
}

func TestUploadRepo_CreateValidation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUploadRepo(db)
		u := createTestUser(t, db, "uploader")

		_, err := repo.Create(ctx, u.ID, nil)
		require.Error(t, err)

		_, err = repo.Create(ctx, "", &model.CreateUploadRequest{FileName: "x.png"})
		require.Error(t, err)

		_, err = repo.Create(ctx, u.ID, &model.CreateUploadRequest{FileName: ""})
		require.Error(t, err)

		// FK violation for unknown user
		_, err = repo.Create(ctx, "missing-user", &model.CreateUploadRequest{FileName: "x.png"})
		require.Error(t, err)
	})
}

func TestUploadRepo_RecentOrderingAndLimit(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewUploadRepoWithTimeProvider(db, tp)
		u := createTestUser(t, db, "feeder")

		names := []string{"a.png", "b.png", "c.png", "d.png", "e.png"}
		for _, name := range names {
			_, err := repo.Create(ctx, u.ID, &model.CreateUploadRequest{FileName: name, SizeBytes: 1})
			require.NoError(t, err)
			tp.AddTime(time.Minute)
		}

		// Default limit is the front page feed size.
		feed, err := repo.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, feed, 4)
		assert.Equal(t, "e.png", feed[0].FileName)
		assert.Equal(t, "d.png", feed[1].FileName)
		assert.Equal(t, "feeder", feed[0].Username)

		all, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})
}

func TestUploadRepo_RecentExcludesBannedUploaders(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUploadRepo(db)
		users := NewUserRepo(db)

		good := createTestUser(t, db, "good")
		bad := createTestUser(t, db, "bad")

		_, err := repo.Create(ctx, good.ID, &model.CreateUploadRequest{FileName: "keep.png"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, bad.ID, &model.CreateUploadRequest{FileName: "hide.png"})
		require.NoError(t, err)

		_, err = users.SetBanned(ctx, bad.ID, true)
		require.NoError(t, err)

		feed, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "keep.png", feed[0].FileName)
	})
}

func TestUploadRepo_StatsByUser(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewUploadRepoWithTimeProvider(db, tp)
		u := createTestUser(t, db, "counted")

		// No uploads yet: zero count, no last upload, but joined_at present.
		stats, err := repo.StatsByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.UploadCount)
		assert.Nil(t, stats.LastUploadAt)
		assert.WithinDuration(t, u.JoinedAt, stats.JoinedAt, time.Second)

		_, err = repo.Create(ctx, u.ID, &model.CreateUploadRequest{FileName: "one.png"})
		require.NoError(t, err)
		tp.AddTime(time.Minute)
		last, err := repo.Create(ctx, u.ID, &model.CreateUploadRequest{FileName: "two.png"})
		require.NoError(t, err)

		stats, err = repo.StatsByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.UploadCount)
		if assert.NotNil(t, stats.LastUploadAt) {
			assert.WithinDuration(t, last.CreatedAt, *stats.LastUploadAt, time.Second)
		}

		_, err = repo.StatsByUser(ctx, "missing-user")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
