package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"

	"github.com/google/uuid"
)

// FolderRepository is an in-memory repositories.FolderRepository
type FolderRepository struct {
	mu      sync.RWMutex
	folders map[string]models.Folder
}

func NewFolderRepository() *FolderRepository {
	return &FolderRepository{folders: make(map[string]models.Folder)}
}

func cloneFolder(f models.Folder) models.Folder {
	f.ParentID = cloneString(f.ParentID)
	f.Path = append([]string{}, f.Path...)
	return f
}

func folderNotFound(id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("Folder not found with id of %s", id)}
}

// Create enforces (owner, parent, name) uniqueness like the database indexes do
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.folders {
		if existing.OwnerID == folder.OwnerID && existing.Name == folder.Name && sameParent(existing.ParentID, folder.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder '%s' already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	folder.ID = uuid.NewString()
	folder.CreatedAt = now()
	folder.UpdatedAt = folder.CreatedAt
	if folder.Path == nil {
		folder.Path = []string{}
	}
	r.folders[folder.ID] = cloneFolder(*folder)
	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, folderNotFound(id)
	}
	folder = cloneFolder(folder)
	return &folder, nil
}

func (r *FolderRepository) GetByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]*models.Folder, len(ids))
	for _, id := range ids {
		if folder, ok := r.folders[id]; ok && folder.OwnerID == ownerID {
			folder = cloneFolder(folder)
			found[id] = &folder
		}
	}
	return found, nil
}

func (r *FolderRepository) FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && folder.Name == name && sameParent(folder.ParentID, parentID) {
			folder = cloneFolder(folder)
			return &folder, nil
		}
	}
	return nil, nil
}

func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.folders[folder.ID]
	if !ok || existing.OwnerID != folder.OwnerID {
		return folderNotFound(folder.ID)
	}
	for _, other := range r.folders {
		if other.ID != folder.ID && other.OwnerID == existing.OwnerID && other.Name == folder.Name && sameParent(other.ParentID, existing.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder '%s' already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   other.ID,
			}
		}
	}

	existing.Name = folder.Name
	existing.UpdatedAt = folder.UpdatedAt
	r.folders[folder.ID] = existing
	return nil
}

func (r *FolderRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return folderNotFound(id)
	}
	delete(r.folders, id)
	return nil
}

func (r *FolderRepository) HasChildren(ctx context.Context, ownerID, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && folder.ParentID != nil && *folder.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	folders := make([]models.Folder, 0)
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID {
			folders = append(folders, cloneFolder(folder))
		}
	}
	sort.Slice(folders, func(i, j int) bool {
		if !folders[i].CreatedAt.Equal(folders[j].CreatedAt) {
			return folders[i].CreatedAt.After(folders[j].CreatedAt)
		}
		return folders[i].ID > folders[j].ID
	})
	return folders, nil
}

// Put stores a folder as-is, bypassing every check. Tests use it to plant
// records a well-behaved client could not create, such as parent cycles.
func (r *FolderRepository) Put(folder models.Folder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.folders[folder.ID] = cloneFolder(folder)
}
