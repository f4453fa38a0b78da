package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/driftbox/driftbox/internal/domain/auth"
	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, username string) *model.User {
	t.Helper()
	repo := NewUserRepo(db)
	u, err := repo.Upsert(context.Background(), &model.UpsertUserRequest{
		ExternalID: fmt.Sprintf("ext-%s-%d", username, time.Now().UnixNano()),
		Username:   username,
		AvatarURL:  "https://cdn.example.com/a.png",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepo_UpsertCreatesAndRefreshes(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		externalID := fmt.Sprintf("ext-%d", time.Now().UnixNano())
		created, err := repo.Upsert(ctx, &model.UpsertUserRequest{
			ExternalID: externalID,
			Username:   "alice",
			AvatarURL:  "https://cdn.example.com/alice.png",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, domainauth.RoleUser, created.Role)
		assert.False(t, created.Banned)
		assert.NotZero(t, created.JoinedAt)

		// Same external identity logs in again with a new username and avatar.
		refreshed, err := repo.Upsert(ctx, &model.UpsertUserRequest{
			ExternalID: externalID,
			Username:   "alice-renamed",
			AvatarURL:  "https://cdn.example.com/alice2.png",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, refreshed.ID)
		assert.Equal(t, "alice-renamed", refreshed.Username)
		assert.Equal(t, "https://cdn.example.com/alice2.png", refreshed.AvatarURL)
		assert.Equal(t, created.JoinedAt.Unix(), refreshed.JoinedAt.Unix())
	})
}

func TestUserRepo_UpsertPreservesRoleAndBan(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		externalID := fmt.Sprintf("ext-%d", time.Now().UnixNano())
		created, err := repo.Upsert(ctx, &model.UpsertUserRequest{
			ExternalID: externalID,
			Username:   "bob",
		})
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, `UPDATE users SET role = 'admin' WHERE id = $1`, created.ID)
		require.NoError(t, err)
		_, err = repo.SetBanned(ctx, created.ID, true)
		require.NoError(t, err)

		// A later login must not reset moderation state.
		after, err := repo.Upsert(ctx, &model.UpsertUserRequest{
			ExternalID: externalID,
			Username:   "bob",
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleAdmin, after.Role)
		assert.True(t, after.Banned)
	})
}

func TestUserRepo_UpsertValidation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		_, err := repo.Upsert(ctx, nil)
		require.Error(t, err)

		_, err = repo.Upsert(ctx, &model.UpsertUserRequest{Username: "no-external-id"})
		require.Error(t, err)

		_, err = repo.Upsert(ctx, &model.UpsertUserRequest{ExternalID: "ext-1"})
		require.Error(t, err)
	})
}

func TestUserRepo_GetByIDAndUsername(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		u := createTestUser(t, db, "carol")

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, byID.Username)

		byName, err := repo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)

		_, err = repo.GetByID(ctx, "missing-id")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_SetBanned(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		u := createTestUser(t, db, "dave")

		banned, err := repo.SetBanned(ctx, u.ID, true)
		require.NoError(t, err)
		assert.True(t, banned.Banned)

		unbanned, err := repo.SetBanned(ctx, u.ID, false)
		require.NoError(t, err)
		assert.False(t, unbanned.Banned)

		_, err = repo.SetBanned(ctx, "missing-id", true)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_ListWithActivity(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)
		tp := NewFixedTimeProvider(testutil.TestTime())
		uploads := NewUploadRepoWithTimeProvider(db, tp)

		createTestUser(t, db, "quiet")
		active := createTestUser(t, db, "active")

		_, err := uploads.Create(ctx, active.ID, &model.CreateUploadRequest{FileName: "one.png", SizeBytes: 10})
		require.NoError(t, err)
		tp.AddTime(time.Minute)
		second, err := uploads.Create(ctx, active.ID, &model.CreateUploadRequest{FileName: "two.png", SizeBytes: 20})
		require.NoError(t, err)

		list, err := repo.ListWithActivity(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)

		byName := map[string]*model.UserActivityRow{}
		for _, row := range list {
			byName[row.Username] = row
		}

		require.Contains(t, byName, "quiet")
		assert.EqualValues(t, 0, byName["quiet"].UploadCount)
		assert.Nil(t, byName["quiet"].LastUploadID)
		assert.Nil(t, byName["quiet"].LastUploadAt)

		require.Contains(t, byName, "active")
		assert.EqualValues(t, 2, byName["active"].UploadCount)
		if assert.NotNil(t, byName["active"].LastUploadID) {
			assert.Equal(t, second.ID, *byName["active"].LastUploadID)
		}
		if assert.NotNil(t, byName["active"].LastUploadAt) {
			assert.WithinDuration(t, second.CreatedAt, *byName["active"].LastUploadAt, time.Second)
		}
	})
}
