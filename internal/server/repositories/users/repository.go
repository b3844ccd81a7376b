// Package users declares the repository contract for account records.
package users

import (
	"context"

	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

// Repository defines persistence operations for users. Implementations
// return common.ErrNotFound for absent records and common.ErrDuplicateEmail /
// common.ErrAdminAlreadySet when the store's unique constraints reject a save.
type Repository interface {
	// FindByEmail looks a user up by exact email (case-sensitive as stored).
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID looks a user up by id.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Save inserts the user when its ID is empty, otherwise updates the
	// existing row. The returned record carries server-assigned fields
	// (id, created_at, updated_at).
	Save(ctx context.Context, user *models.User) (*models.User, error)

	// Delete removes the user. Owned tokens are removed by the store cascade.
	Delete(ctx context.Context, user *models.User) error

	// ListAll returns every user, oldest first.
	ListAll(ctx context.Context) ([]*models.User, error)

	// AdminExists reports whether any user currently holds the admin role.
	AdminExists(ctx context.Context) (bool, error)
}
