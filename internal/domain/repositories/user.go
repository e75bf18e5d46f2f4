package repositories

import (
	"context"

	"imagefolders/internal/domain/models"
)

// UserRepository defines data access operations for accounts
type UserRepository interface {
	// Create persists a new user; a taken email is a domain.ConflictError
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail matches case-insensitively
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
