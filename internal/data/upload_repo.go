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
)

// defaultRecentLimit matches the front page feed size.
const defaultRecentLimit = 4

// maxRecentLimit caps the feed size regardless of what the caller asks for.
const maxRecentLimit = 100

// UploadRepo provides database operations for upload records.
type UploadRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUploadRepo creates a new UploadRepo with real time provider.
func NewUploadRepo(db *sql.DB) *UploadRepo {
	return &UploadRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUploadRepoWithTimeProvider creates a new UploadRepo with a custom time provider (useful for tests).
func NewUploadRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UploadRepo {
	return &UploadRepo{DB: db, timeProvider: tp}
}

// Create records an upload for a user.
func (r *UploadRepo) Create(ctx context.Context, userID string, req *model.CreateUploadRequest) (*model.Upload, error) {
	if req == nil {
		return nil, errors.New("create upload request is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required and cannot be empty")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Upload
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO uploads (id, user_id, file_name, content_type, size_bytes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, user_id, file_name, content_type, size_bytes, created_at
		`,
			uuid.NewString(),
			userID,
			strings.TrimSpace(req.FileName),
			req.ContentType,
			req.SizeBytes,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Upload])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return &out, nil
}

// Recent returns the newest uploads joined with uploader display data.
// Uploads by banned users are excluded from the feed.
func (r *UploadRepo) Recent(ctx context.Context, limit int) ([]*model.RecentUpload, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var rowsOut []model.RecentUpload
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT up.id, up.file_name, up.created_at, u.username, u.avatar_url
			FROM uploads up
			JOIN users u ON u.id = up.user_id
			WHERE NOT u.banned
			ORDER BY up.created_at DESC
			LIMIT $1
		`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RecentUpload])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recent uploads: %w", err)
	}

	res := make([]*model.RecentUpload, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// StatsByUser aggregates a user's upload activity.
func (r *UploadRepo) StatsByUser(ctx context.Context, userID string) (*model.UserUploadStats, error) {
	var stats model.UserUploadStats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT COUNT(up.id), MAX(up.created_at), u.joined_at
			FROM users u
			LEFT JOIN uploads up ON up.user_id = u.id
			WHERE u.id = $1
			GROUP BY u.id
		`, userID).Scan(&stats.UploadCount, &stats.LastUploadAt, &stats.JoinedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get upload stats: %w", err)
	}
	return &stats, nil
}
