// Package tokens declares the repository contract for session tokens in
// persistent storage.
package tokens

import (
	"context"

	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

// Repository defines operations for storing, retrieving, and revoking
// session tokens.
type Repository interface {
	// Create stores a new token. The token value must already be set; the id
	// and created_at are assigned here.
	Create(ctx context.Context, token *models.Token) (*models.Token, error)

	// FindByValue looks a token up by its opaque value.
	// Returns common.ErrNotFound when the token is absent.
	FindByValue(ctx context.Context, value string) (*models.Token, error)

	// FindByUser returns the newest token owned by the user, or
	// common.ErrNotFound when the user holds none.
	FindByUser(ctx context.Context, userID string) (*models.Token, error)

	// Delete removes a token by id. Deleting a non-existent token is not an
	// error.
	Delete(ctx context.Context, id string) error
}
