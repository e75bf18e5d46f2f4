package repositories

import (
	"context"

	"imagefolders/internal/domain/models"
)

// ImageRepository defines data access operations for image records
type ImageRepository interface {
	// Create assigns ID and CreatedAt and persists the image
	Create(ctx context.Context, image *models.Image) error

	// GetByID retrieves an image owned by ownerID
	GetByID(ctx context.Context, ownerID, id string) (*models.Image, error)

	// Find lists an owner's images matching filter, newest first
	Find(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error)

	// Delete deletes an image record
	Delete(ctx context.Context, ownerID, id string) error
}
