package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, firstname, lastname, email, role, password_hash,
	account_enabled, use_biometrics, profile_picture, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Role, &user.PasswordHash, &user.AccountEnabled, &user.UseBiometrics,
		&user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		return r.insert(ctx, user)
	}
	return r.update(ctx, user)
}

func (r *PostgresRepository) insert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, firstname, lastname, email, role, password_hash,
			account_enabled, use_biometrics, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	user.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query, user.ID, user.FirstName, user.LastName,
		user.Email, user.Role, user.PasswordHash, user.AccountEnabled,
		user.UseBiometrics, user.ProfilePicture).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return user, nil
}

func (r *PostgresRepository) update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET firstname = $2, lastname = $3, email = $4, role = $5,
			password_hash = $6, account_enabled = $7, use_biometrics = $8,
			profile_picture = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.FirstName, user.LastName,
		user.Email, user.Role, user.PasswordHash, user.AccountEnabled,
		user.UseBiometrics, user.ProfilePicture).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, mapConstraintError(err)
	}
	return user, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, user *models.User) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, user.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) AdminExists(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, models.RoleAdmin).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// mapConstraintError translates unique-violation errors raised by the store's
// indexes into domain sentinels. The email index guards per-email uniqueness,
// the partial role index guards the single-admin invariant.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_single_admin_idx":
			return common.ErrAdminAlreadySet
		default:
			return common.ErrDuplicateEmail
		}
	}
	return fmt.Errorf("db error: %w", err)
}
