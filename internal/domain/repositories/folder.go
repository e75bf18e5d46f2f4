package repositories

import (
	"context"

	"imagefolders/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every lookup is scoped to an owner; a folder owned by someone else is
// reported exactly like a missing one (domain.ErrNotFound).
type FolderRepository interface {
	// Create assigns ID and timestamps and persists the folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, ownerID, id string) (*models.Folder, error)

	// GetByIDs retrieves the subset of ids that exist, keyed by ID
	GetByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*models.Folder, error)

	// FindByName finds a sibling by exact name under parentID (nil = root).
	// Returns nil, nil when there is none.
	FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)

	// Update persists Name and UpdatedAt
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, ownerID, id string) error

	// HasChildren reports whether any folder names id as its parent
	HasChildren(ctx context.Context, ownerID, id string) (bool, error)

	// ListByOwner retrieves all of an owner's folders, newest first
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)
}
