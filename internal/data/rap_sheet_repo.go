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

// RapSheetRepo provides database operations for moderation history entries.
type RapSheetRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRapSheetRepo creates a new RapSheetRepo with real time provider.
func NewRapSheetRepo(db *sql.DB) *RapSheetRepo {
	return &RapSheetRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRapSheetRepoWithTimeProvider creates a new RapSheetRepo with a custom time provider (useful for tests).
func NewRapSheetRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RapSheetRepo {
	return &RapSheetRepo{DB: db, timeProvider: tp}
}

// Create appends a rap sheet entry. Entries are never updated or deleted.
func (r *RapSheetRepo) Create(ctx context.Context, req *model.CreateRapSheetRequest) (*model.RapSheetEntry, error) {
	if req == nil {
		return nil, errors.New("create rap sheet request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.RapSheetEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO rap_sheets (id, recipient_id, issuer_id, action, reason, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, recipient_id, issuer_id, action, reason, created_at
		`,
			uuid.NewString(),
			req.RecipientID,
			req.IssuerID,
			string(req.Action),
			strings.TrimSpace(req.Reason),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RapSheetEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create rap sheet entry: %w", err)
	}
	return &out, nil
}

// ListByRecipient returns a user's moderation history, newest first.
func (r *RapSheetRepo) ListByRecipient(ctx context.Context, recipientID string) ([]*model.RapSheetEntry, error) {
	var rowsOut []model.RapSheetEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, recipient_id, issuer_id, action, reason, created_at
			FROM rap_sheets
			WHERE recipient_id = $1
			ORDER BY created_at DESC
		`, recipientID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RapSheetEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list rap sheet entries: %w", err)
	}

	res := make([]*model.RapSheetEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
