package auth

import (
	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

// RequireRole gates an already-authenticated user on the given role.
// The switch is exhaustive over the closed role enum; unknown roles never
// pass. Returns common.ErrUnauthorized on any mismatch.
func RequireRole(user *models.User, role models.UserRole) error {
	if user == nil || !role.IsValid() {
		return common.ErrUnauthorized
	}

	switch user.Role {
	case models.RoleConsumer, models.RoleAdmin:
		if user.Role != role {
			return common.ErrUnauthorized
		}
		return nil
	default:
		return common.ErrUnauthorized
	}
}
