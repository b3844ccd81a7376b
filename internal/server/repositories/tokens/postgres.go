// Package tokens provides a PostgreSQL-backed repository for session tokens.
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.Token) (*models.Token, error) {
	query := `
		INSERT INTO tokens (id, user_id, value, source, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	token.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query, token.ID, token.UserID, token.Value,
		token.Source, token.ExpiresAt).Scan(&token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) FindByValue(ctx context.Context, value string) (*models.Token, error) {
	query := `
		SELECT id, user_id, value, source, expires_at, created_at
		FROM tokens
		WHERE value = $1
	`
	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(&token.ID, &token.UserID,
		&token.Value, &token.Source, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (*models.Token, error) {
	query := `
		SELECT id, user_id, value, source, expires_at, created_at
		FROM tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&token.ID, &token.UserID,
		&token.Value, &token.Source, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tokens WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
