package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/repomanager"
)

// PasswordAuthenticator resolves a caller identity from an email/password
// pair. Lookups are read-only.
type PasswordAuthenticator struct {
	db    dbx.DBTX
	repos repomanager.RepositoryManager
}

func NewPasswordAuthenticator(db dbx.DBTX, repos repomanager.RepositoryManager) *PasswordAuthenticator {
	return &PasswordAuthenticator{db: db, repos: repos}
}

// Authenticate verifies the pair against the credential store. An unknown
// email and a wrong password both return common.ErrInvalidCredentials so the
// caller cannot tell which one failed.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.repos.Users(a.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// TokenAuthenticator resolves a caller identity from an opaque bearer token.
//
// Expiry handling is a policy decision: with enforceExpiry false (the
// default) the recorded expiry is advisory and long-lived sessions keep
// working; with it enabled, expired tokens are rejected.
type TokenAuthenticator struct {
	db            dbx.DBTX
	repos         repomanager.RepositoryManager
	enforceExpiry bool
	now           func() time.Time
}

func NewTokenAuthenticator(db dbx.DBTX, repos repomanager.RepositoryManager, enforceExpiry bool) *TokenAuthenticator {
	return &TokenAuthenticator{db: db, repos: repos, enforceExpiry: enforceExpiry, now: time.Now}
}

// Authenticate resolves the token value to its owning user. Missing tokens,
// tokens whose owner no longer exists, and (when enforced) expired tokens all
// fail with common.ErrUnauthenticated.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, value string) (*models.User, error) {
	token, err := a.repos.Tokens(a.db).FindByValue(ctx, value)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error resolving token: %w", err)
	}

	if a.enforceExpiry && token.Expired(a.now()) {
		return nil, common.ErrUnauthenticated
	}

	user, err := a.repos.Users(a.db).FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}
	return user, nil
}
