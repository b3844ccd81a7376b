// Package httpapi exposes the account service over REST. It owns routing,
// request decoding, and the mapping from domain errors to HTTP statuses;
// all business rules live in the services layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/saschasalles/LabPlatformAPI/internal/logging"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
	"github.com/saschasalles/LabPlatformAPI/internal/server/services"
)

// Accounts is the account lifecycle surface consumed by the HTTP layer.
type Accounts interface {
	Signup(ctx context.Context, req services.SignupRequest) (*services.Session, error)
	BootstrapAdmin(ctx context.Context, req services.SignupRequest) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	AuthenticateByToken(ctx context.Context, value string) (*models.User, error)
	SignOut(ctx context.Context, user *models.User) error
	GetProfile(ctx context.Context, user *models.User) *models.PublicUser
	DeleteAccount(ctx context.Context, user *models.User) error
	SetAccountEnabled(ctx context.Context, caller *models.User, targetID string, enabled bool) error
	ListAllUsers(ctx context.Context, caller *models.User) ([]*models.PublicUser, error)
}

// Pictures is the profile-picture surface consumed by the HTTP layer.
type Pictures interface {
	RequestUploadURL(ctx context.Context) (string, string, error)
	ConfirmUpload(ctx context.Context, user *models.User, key string) (*models.PublicUser, error)
	ViewURL(ctx context.Context, user *models.User) (string, error)
}

type Server struct {
	address  string
	logger   logging.Logger
	accounts Accounts
	pictures Pictures
}

func NewServer(address string, logger logging.Logger, accounts Accounts, pictures Pictures) *Server {
	return &Server{
		address:  address,
		logger:   logger.With("module", "httpapi"),
		accounts: accounts,
		pictures: pictures,
	}
}

// Routes assembles the chi router. Groups mirror the access levels:
// public signup/login, token-protected self-service, admin-only management.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/users", func(api chi.Router) {
		api.Post("/signup", s.handleSignup)
		api.Post("/admin/signup", s.handleAdminSignup)
		api.Post("/login", s.handleLogin)

		api.Group(func(protected chi.Router) {
			protected.Use(s.requireAuth)

			protected.Get("/me", s.handleGetProfile)
			protected.Delete("/me", s.handleDeleteAccount)
			protected.Delete("/logout", s.handleLogout)

			protected.Post("/me/picture/upload-url", s.handlePictureUploadURL)
			protected.Put("/me/picture", s.handlePictureConfirm)
			protected.Get("/me/picture", s.handlePictureView)

			protected.Group(func(admin chi.Router) {
				admin.Use(s.requireAdmin)
				admin.Get("/", s.handleListUsers)
				admin.Patch("/{userID}/enabled", s.handleSetEnabled)
			})
		})
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
