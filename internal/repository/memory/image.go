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

// ImageRepository is an in-memory repositories.ImageRepository
type ImageRepository struct {
	mu     sync.RWMutex
	images map[string]models.Image
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{images: make(map[string]models.Image)}
}

func imageNotFound(id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("image %s not found", id)}
}

func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	image.ID = uuid.NewString()
	image.CreatedAt = now()
	stored := *image
	stored.FolderID = cloneString(image.FolderID)
	stored.FolderName = ""
	r.images[image.ID] = stored
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, ok := r.images[id]
	if !ok || image.OwnerID != ownerID {
		return nil, imageNotFound(id)
	}
	image.FolderID = cloneString(image.FolderID)
	return &image, nil
}

func (r *ImageRepository) Find(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	images := make([]models.Image, 0)
	for _, image := range r.images {
		if image.OwnerID != ownerID {
			continue
		}
		if filter.FolderID != nil && (image.FolderID == nil || *image.FolderID != *filter.FolderID) {
			continue
		}
		if filter.Search != "" && !matchesText(image.Name, filter.Search) {
			continue
		}
		image.FolderID = cloneString(image.FolderID)
		images = append(images, image)
	}

	sort.Slice(images, func(i, j int) bool {
		if !images[i].CreatedAt.Equal(images[j].CreatedAt) {
			return images[i].CreatedAt.After(images[j].CreatedAt)
		}
		return images[i].ID > images[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(images) {
			return []models.Image{}, nil
		}
		images = images[filter.Offset:]
	}
	if filter.Limit > 0 && len(images) > filter.Limit {
		images = images[:filter.Limit]
	}
	return images, nil
}

func (r *ImageRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	image, ok := r.images[id]
	if !ok || image.OwnerID != ownerID {
		return imageNotFound(id)
	}
	delete(r.images, id)
	return nil
}
