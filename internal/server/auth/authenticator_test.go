package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
	tokensrepo "github.com/saschasalles/LabPlatformAPI/internal/server/repositories/tokens"
	usersrepo "github.com/saschasalles/LabPlatformAPI/internal/server/repositories/users"
)

// --- fakes ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Save(ctx context.Context, u *models.User) (*models.User, error) {
	return u, nil
}
func (f *fakeUsersRepo) Delete(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUsersRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}
func (f *fakeUsersRepo) AdminExists(ctx context.Context) (bool, error) { return false, nil }

type fakeTokensRepo struct {
	byValue map[string]*models.Token
}

func (f *fakeTokensRepo) Create(ctx context.Context, t *models.Token) (*models.Token, error) {
	return t, nil
}

func (f *fakeTokensRepo) FindByValue(ctx context.Context, value string) (*models.Token, error) {
	if t, ok := f.byValue[value]; ok {
		return t, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeTokensRepo) FindByUser(ctx context.Context, userID string) (*models.Token, error) {
	return nil, common.ErrNotFound
}
func (f *fakeTokensRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTokensRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository        { return m.u }
func (m *fakeRepoManager) Tokens(db dbx.DBTX) tokensrepo.Repository      { return m.t }

// --- password strategy ---

func TestPasswordAuthenticator_Success(t *testing.T) {
	digest, err := HashPassword("12345678")
	require.NoError(t, err)

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmail: map[string]*models.User{
		"a@x.com": {ID: "u1", Email: "a@x.com", PasswordHash: digest},
	}}}
	a := NewPasswordAuthenticator(nil, rm)

	user, err := a.Authenticate(context.Background(), "a@x.com", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestPasswordAuthenticator_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	digest, err := HashPassword("12345678")
	require.NoError(t, err)

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmail: map[string]*models.User{
		"a@x.com": {ID: "u1", Email: "a@x.com", PasswordHash: digest},
	}}}
	a := NewPasswordAuthenticator(nil, rm)

	_, errUnknown := a.Authenticate(context.Background(), "nobody@x.com", "12345678")
	_, errWrongPwd := a.Authenticate(context.Background(), "a@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPwd, common.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPwd)
}

// --- token strategy ---

func TestTokenAuthenticator_Success(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[string]*models.User{"u1": {ID: "u1"}}},
		t: &fakeTokensRepo{byValue: map[string]*models.Token{
			"opaque": {ID: "t1", UserID: "u1", Value: "opaque", ExpiresAt: time.Now().Add(time.Hour)},
		}},
	}
	a := NewTokenAuthenticator(nil, rm, false)

	user, err := a.Authenticate(context.Background(), "opaque")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestTokenAuthenticator_UnknownToken(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{}, t: &fakeTokensRepo{}}
	a := NewTokenAuthenticator(nil, rm, false)

	_, err := a.Authenticate(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestTokenAuthenticator_OwnerGone(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		t: &fakeTokensRepo{byValue: map[string]*models.Token{
			"orphan": {ID: "t1", UserID: "deleted", Value: "orphan", ExpiresAt: time.Now().Add(time.Hour)},
		}},
	}
	a := NewTokenAuthenticator(nil, rm, false)

	_, err := a.Authenticate(context.Background(), "orphan")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestTokenAuthenticator_ExpiryPolicy(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byID: map[string]*models.User{"u1": {ID: "u1"}}},
		t: &fakeTokensRepo{byValue: map[string]*models.Token{
			"stale": {ID: "t1", UserID: "u1", Value: "stale", ExpiresAt: time.Now().Add(-time.Hour)},
		}},
	}

	advisory := NewTokenAuthenticator(nil, rm, false)
	_, err := advisory.Authenticate(context.Background(), "stale")
	assert.NoError(t, err, "advisory mode keeps expired tokens working")

	enforced := NewTokenAuthenticator(nil, rm, true)
	_, err = enforced.Authenticate(context.Background(), "stale")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
