package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/server/auth"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// userFromContext returns the authenticated caller stored by requireAuth.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// requireAuth resolves the bearer token on the request and stores the caller
// in the context. A missing token fails with 401; a present but malformed
// Authorization header fails with 400.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, common.ErrUnauthenticated.Error())
			return
		}

		scheme, value, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || value == "" {
			respondError(w, http.StatusBadRequest, "invalid authorization header")
			return
		}

		user, err := s.accounts.AuthenticateByToken(r.Context(), value)
		if err != nil {
			s.logger.Warn(r.Context(), "token authentication failed", "error", err.Error())
			respondDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates a subtree on the admin role. Callers that never went
// through requireAuth surface as 400, not as a silent pass.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusBadRequest, "missing authentication")
			return
		}

		if err := auth.RequireRole(user, models.RoleAdmin); err != nil {
			respondDomainError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
