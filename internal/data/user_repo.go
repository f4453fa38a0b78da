package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/driftbox/driftbox/internal/data/pgxutil"
	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/ports"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = ports.ErrUserNotFound

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Upsert creates a user on first login or refreshes username/avatar for a
// returning one. The unique index on external_id guarantees one row per
// external identity even under concurrent first logins.
func (r *UserRepo) Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, external_id, username, avatar_url, joined_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (external_id) DO UPDATE SET
				username   = EXCLUDED.username,
				avatar_url = EXCLUDED.avatar_url,
				updated_at = EXCLUDED.updated_at
			RETURNING id, external_id, username, avatar_url, role, banned, joined_at, updated_at
		`,
			uuid.NewString(),
			strings.TrimSpace(req.ExternalID),
			strings.TrimSpace(req.Username),
			req.AvatarURL,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// GetByUsername retrieves a user by username. When several users share a
// username the most recent one wins; external IDs remain the stable key.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByUsernameQuery, "failed to get user by username", username)
}

// ListWithActivity retrieves all users joined with their upload aggregates,
// newest member first.
func (r *UserRepo) ListWithActivity(ctx context.Context) ([]*model.UserActivityRow, error) {
	var rowsOut []model.UserActivityRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userListWithActivityQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UserActivityRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users with activity: %w", err)
	}

	res := make([]*model.UserActivityRow, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetBanned updates the banned flag for a user.
func (r *UserRepo) SetBanned(ctx context.Context, id string, banned bool) (*model.User, error) {
	return r.updateByQuery(ctx, `
		UPDATE users SET banned = $2, updated_at = $3 WHERE id = $1
		RETURNING id, external_id, username, avatar_url, role, banned, joined_at, updated_at`,
		"failed to set banned flag", id, banned, r.timeProvider.Now().UTC())
}

// --- helpers ---

const (
	userGetByIDQuery = `
		SELECT id, external_id, username, avatar_url, role, banned, joined_at, updated_at
		FROM users
		WHERE id = $1`

	userGetByUsernameQuery = `
		SELECT id, external_id, username, avatar_url, role, banned, joined_at, updated_at
		FROM users
		WHERE username = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	userListWithActivityQuery = `
		SELECT u.id, u.username, u.avatar_url, u.role, u.banned, u.joined_at,
		       COUNT(up.id) AS upload_count,
		       (ARRAY_AGG(up.id ORDER BY up.created_at DESC))[1] AS last_upload_id,
		       MAX(up.created_at) AS last_upload_at
		FROM users u
		LEFT JOIN uploads up ON up.user_id = u.id
		GROUP BY u.id
		ORDER BY u.joined_at DESC`
)

// getByQuery executes a query expected to return a single user.
func (r *UserRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *UserRepo) updateByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.User, error) {
	user, err := r.getByQuery(ctx, q, errMsg, args...)
	if err != nil {
		return nil, err
	}
	return user, nil
}
