// Package prompts stores saved chat prompts. Every query is scoped by the
// owning user id.
package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/common"
	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

const selectColumns = `SELECT id, user_id, content, is_saved, created_at FROM prompts`

func (r *SQLRepository) Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	query := r.dialect.Rebind(
		`INSERT INTO prompts (user_id, content, is_saved, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	createdAt := time.Now().UTC()

	err := r.db.QueryRowContext(ctx, query,
		prompt.UserID, prompt.Content, prompt.IsSaved, createdAt).Scan(&prompt.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	prompt.CreatedAt = createdAt
	return prompt, nil
}

// ListSaved returns the user's saved prompts, newest first.
func (r *SQLRepository) ListSaved(ctx context.Context, userID int64) ([]*models.Prompt, error) {
	query := r.dialect.Rebind(selectColumns + `
		 WHERE user_id = ? AND is_saved = ?
		 ORDER BY created_at DESC, id DESC`)

	return r.list(ctx, query, userID, true)
}

// ListRecent returns at most limit prompts regardless of saved state, newest
// first.
func (r *SQLRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*models.Prompt, error) {
	query := r.dialect.Rebind(selectColumns + `
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`)

	return r.list(ctx, query, userID, limit)
}

// ToggleSaved flips is_saved on a prompt owned by userID in one statement and
// returns the new value. A missing or foreign prompt yields ErrorNotFound.
func (r *SQLRepository) ToggleSaved(ctx context.Context, userID, promptID int64) (bool, error) {
	query := r.dialect.Rebind(
		`UPDATE prompts SET is_saved = NOT is_saved
		 WHERE id = ? AND user_id = ?
		 RETURNING is_saved`)

	var saved bool
	err := r.db.QueryRowContext(ctx, query, promptID, userID).Scan(&saved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*models.Prompt, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Prompt, 0)
	for rows.Next() {
		p := &models.Prompt{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.IsSaved, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
