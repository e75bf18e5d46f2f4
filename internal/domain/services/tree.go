package services

import (
	"context"

	"imagefolders/internal/domain/models"
)

// TreeService assembles folder hierarchies
type TreeService interface {
	// GetFolderTree returns the owner's folders as a forest sorted by name at every level
	GetFolderTree(ctx context.Context, ownerID string) ([]*models.FolderNode, error)
}
