// Package services contains server-side business logic. This file implements
// AccountService, which orchestrates signup, admin bootstrap, sign-in,
// sign-out, and the admin-gated account management operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/auth"
	"github.com/saschasalles/LabPlatformAPI/internal/server/config"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/repomanager"
	"github.com/saschasalles/LabPlatformAPI/internal/shared"
)

// tokenEntropyBytes is the amount of secure randomness behind every session
// token value, base64 encoded before storage.
const tokenEntropyBytes = 16

// SignupRequest carries the profile fields of a signup or admin bootstrap.
// Field-level validation (email shape, password length) is the transport
// layer's job; the service assumes it already ran.
type SignupRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	UseBiometrics bool
}

// Session bundles a freshly issued token with the public view of its owner.
type Session struct {
	Token *models.Token
	User  *models.PublicUser
}

// AccountService provides the account lifecycle operations:
//   - Signup / BootstrapAdmin: create accounts and issue a first token
//   - SignIn / SignOut / AuthenticateByToken: session management
//   - GetProfile / DeleteAccount: self-service operations
//   - SetAccountEnabled / ListAllUsers: admin-gated management
type AccountService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	passwordAuth  *auth.PasswordAuthenticator
	tokenAuth     *auth.TokenAuthenticator
	tokenValidity time.Duration
	now           func() time.Time
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:            db,
		repos:         m,
		passwordAuth:  auth.NewPasswordAuthenticator(db, m),
		tokenAuth:     auth.NewTokenAuthenticator(db, m, cfg.TokenExpiryEnforced),
		tokenValidity: cfg.TokenValidityDuration,
		now:           time.Now,
	}
}

// Signup creates a consumer account. New accounts start disabled until an
// administrator enables them. The email existence check here is a fast path
// for a better error; the store's unique index is the authoritative guard
// when two signups race on the same email.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	usersRepo := s.repos.Users(s.db)

	if _, err := usersRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Role:           models.RoleConsumer,
		AccountEnabled: false,
		UseBiometrics:  req.UseBiometrics,
		PasswordHash:   hash,
	}

	return s.createWithToken(ctx, user, models.SourceSignup)
}

// BootstrapAdmin creates the single administrator account, enabled
// immediately. The check is global: when any admin already exists the attempt
// fails with ErrAdminAlreadySet regardless of email. The store's partial
// unique index backs the check under concurrent bootstrap attempts.
func (s *AccountService) BootstrapAdmin(ctx context.Context, req SignupRequest) (*Session, error) {
	usersRepo := s.repos.Users(s.db)

	exists, err := usersRepo.AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking for admin: %w", err)
	}
	if exists {
		return nil, common.ErrAdminAlreadySet
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Role:           models.RoleAdmin,
		AccountEnabled: true,
		UseBiometrics:  req.UseBiometrics,
		PasswordHash:   hash,
	}

	return s.createWithToken(ctx, user, models.SourceSignup)
}

// SignIn verifies the credentials and issues a new token. Prior sessions stay
// valid: a user may hold one token per device.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.passwordAuth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, s.db, user.ID, models.SourceLogin)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user.AsPublic()}, nil
}

// AuthenticateByToken resolves a bearer token value to its owning user.
func (s *AccountService) AuthenticateByToken(ctx context.Context, value string) (*models.User, error) {
	return s.tokenAuth.Authenticate(ctx, value)
}

// SignOut revokes a token belonging to the caller. Fails with ErrNotFound
// when the caller holds no token.
func (s *AccountService) SignOut(ctx context.Context, user *models.User) error {
	tokensRepo := s.repos.Tokens(s.db)

	token, err := tokensRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	return tokensRepo.Delete(ctx, token.ID)
}

// GetProfile returns the caller's public view.
func (s *AccountService) GetProfile(ctx context.Context, user *models.User) *models.PublicUser {
	return user.AsPublic()
}

// DeleteAccount removes the caller's account. Tokens go with it via the
// store cascade.
func (s *AccountService) DeleteAccount(ctx context.Context, user *models.User) error {
	return s.repos.Users(s.db).Delete(ctx, user)
}

// SetAccountEnabled flips the enabled flag on the target account. Admin only;
// there is no self-service path.
func (s *AccountService) SetAccountEnabled(ctx context.Context, caller *models.User, targetID string, enabled bool) error {
	if err := auth.RequireRole(caller, models.RoleAdmin); err != nil {
		return err
	}

	usersRepo := s.repos.Users(s.db)

	target, err := usersRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	target.AccountEnabled = enabled
	if _, err := usersRepo.Save(ctx, target); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// ListAllUsers returns the public views of every account. Admin only.
func (s *AccountService) ListAllUsers(ctx context.Context, caller *models.User) ([]*models.PublicUser, error) {
	if err := auth.RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	all, err := s.repos.Users(s.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	result := make([]*models.PublicUser, 0, len(all))
	for _, u := range all {
		result = append(result, u.AsPublic())
	}
	return result, nil
}

// --- helpers below ---

// createWithToken persists the user and issues its first token in one
// transaction, remapping store constraint violations that raced past the
// application-level checks.
func (s *AccountService) createWithToken(ctx context.Context, user *models.User, source models.SessionSource) (*Session, error) {
	var session *Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		saved, err := s.repos.Users(tx).Save(ctx, user)
		if err != nil {
			return err
		}

		token, err := s.issueToken(ctx, tx, saved.ID, source)
		if err != nil {
			return err
		}

		session = &Session{Token: token, User: saved.AsPublic()}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateEmail):
			return nil, common.ErrEmailTaken
		case errors.Is(err, common.ErrAdminAlreadySet):
			return nil, common.ErrAdminAlreadySet
		default:
			return nil, err
		}
	}
	return session, nil
}

func (s *AccountService) issueToken(ctx context.Context, db dbx.DBTX, userID string, source models.SessionSource) (*models.Token, error) {
	value, err := shared.MakeRandBase64String(tokenEntropyBytes)
	if err != nil {
		return nil, common.ErrInternal
	}

	token := &models.Token{
		UserID:    userID,
		Value:     value,
		Source:    source,
		ExpiresAt: s.now().Add(s.tokenValidity),
	}

	created, err := s.repos.Tokens(db).Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error storing token: %w", err)
	}
	return created, nil
}
