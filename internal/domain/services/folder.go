package services

import (
	"context"

	"imagefolders/internal/domain/models"
)

// FolderService manages a user's folder hierarchy
type FolderService interface {
	// CreateFolder creates a folder under req.ParentID (nil or "" = root)
	CreateFolder(ctx context.Context, ownerID string, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves one of the owner's folders
	GetFolder(ctx context.Context, ownerID, id string) (*models.Folder, error)

	// RenameFolder changes a folder's name in place. Descendant paths are not rewritten.
	RenameFolder(ctx context.Context, ownerID, id string, req *RenameFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder that has no subfolders
	DeleteFolder(ctx context.Context, ownerID, id string) error

	// ListFolders returns every folder of the owner, newest first
	ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentFolder,omitempty"` // null or "" for root folders
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	Name string `json:"name"`
}
