package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"
)

const duplicateFolderMsg = "A folder with this name already exists in this location"

type folderService struct {
	folderRepo repositories.FolderRepository
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	validator *ResourceValidator,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		validator:  validator,
		logger:     logger,
	}
}

// CreateFolder creates a folder under the requested parent, or at the root
// when no parent is given. The duplicate-name lookup is advisory; the store's
// unique index (where it has one) is the real guard, and a conflict it
// reports is translated to the same error.
func (s *folderService) CreateFolder(ctx context.Context, ownerID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	name, err := normalizeFolderName(req.Name)
	if err != nil {
		return nil, err
	}

	parent, err := s.validator.ResolveFolder(ctx, ownerID, req.ParentID, "Parent folder not found")
	if err != nil {
		return nil, err
	}

	folder := &models.Folder{
		Name:    name,
		OwnerID: ownerID,
		Path:    []string{},
	}
	if parent != nil {
		folder.ParentID = &parent.ID
		folder.Path = parent.ChildPath()
	}

	if err := s.checkSiblingName(ctx, ownerID, folder.ParentID, name, ""); err != nil {
		return nil, err
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, &domain.ConflictError{Message: duplicateFolderMsg, ResourceType: "folder"}
		}
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
		"parent_folder_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves one of the owner's folders
func (s *folderService) GetFolder(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, ownerID, id)
}

// RenameFolder changes the folder's name. The stored paths of descendants
// still carry the old name afterwards.
func (s *folderService) RenameFolder(ctx context.Context, ownerID, id string, req *services.RenameFolderRequest) (*models.Folder, error) {
	name, err := normalizeFolderName(req.Name)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSiblingName(ctx, ownerID, folder.ParentID, name, folder.ID); err != nil {
		return nil, err
	}

	oldName := folder.Name
	folder.Name = name
	folder.UpdatedAt = time.Now().UTC()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, &domain.ConflictError{Message: duplicateFolderMsg, ResourceType: "folder"}
		}
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"old_name", oldName,
		"name", folder.Name,
		"owner_id", ownerID,
	)

	return folder, nil
}

// DeleteFolder deletes a childless folder. Images filed in it keep their
// folder reference.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, id string) error {
	folder, err := s.folderRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.folderRepo.HasChildren(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("check subfolders: %w", err)
	}
	if hasChildren {
		return &domain.ConflictError{
			Message:      "Cannot delete folder that contains subfolders",
			ResourceType: "folder",
			ResourceID:   id,
		}
	}

	if err := s.folderRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"owner_id", ownerID,
	)

	return nil
}

// ListFolders returns every folder of the owner, newest first
func (s *folderService) ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folderRepo.ListByOwner(ctx, ownerID)
}

// checkSiblingName fails with a ConflictError when a folder other than
// selfID already uses name under parentID
func (s *folderService) checkSiblingName(ctx context.Context, ownerID string, parentID *string, name, selfID string) error {
	existing, err := s.folderRepo.FindByName(ctx, ownerID, parentID, name)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return &domain.ConflictError{
			Message:      duplicateFolderMsg,
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}
	return nil
}
