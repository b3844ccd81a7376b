package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "firstname", "lastname", "email", "role",
		"password_hash", "account_enabled", "use_biometrics", "profile_picture",
		"created_at", "updated_at"})
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	now := time.Now()
	rows := userRows().AddRow("u1", "Ada", "Lovelace", "ada@x.com", "consumer",
		"$2a$10$h", false, false, nil, now, now)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ada@x.com").WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RoleConsumer, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("missing@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSave_Insert(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	user := &models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@x.com",
		Role:         models.RoleConsumer,
		PasswordHash: "$2a$10$h",
	}
	saved, err := repo.Save(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "insert must assign an id")
}

func TestSave_DuplicateEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Save(context.Background(), &models.User{Email: "dup@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestSave_SecondAdminRejected(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_single_admin_idx"})

	_, err := repo.Save(context.Background(), &models.User{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, common.ErrAdminAlreadySet)
}

func TestSave_Update(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE users`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	user := &models.User{ID: "u1", Email: "ada@x.com", AccountEnabled: true}
	saved, err := repo.Save(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)
}

func TestSave_UpdateMissingRow(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Save(context.Background(), &models.User{ID: "gone"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), &models.User{ID: "u1"})
	require.NoError(t, err)
}

func TestListAll(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	now := time.Now()
	rows := userRows().
		AddRow("u1", "Ada", "Lovelace", "ada@x.com", "admin", "h1", true, false, nil, now, now).
		AddRow("u2", "Alan", "Turing", "alan@x.com", "consumer", "h2", false, true, nil, now, now)
	mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at`).WillReturnRows(rows)

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, "alan@x.com", users[1].Email)
}

func TestAdminExists(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(string(models.RoleAdmin)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.AdminExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAdminExists_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(errors.New("down"))

	_, err := repo.AdminExists(context.Background())
	assert.Error(t, err)
}
