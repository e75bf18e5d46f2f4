package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"imagefolders/internal/config"
	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"
)

// FileStore keeps the bytes of uploaded images
type FileStore interface {
	// Save stores r under a generated name derived from fieldName and the
	// extension of originalName, and returns that name
	Save(fieldName, originalName string, r io.Reader) (string, error)

	// Remove deletes a stored file; a missing file is not an error
	Remove(name string) error

	// URL builds the public URL of a stored file
	URL(baseURL, name string) string

	// NameFromURL recovers the stored name from a URL built by URL, or ""
	NameFromURL(fileURL string) string
}

type imageService struct {
	imageRepo  repositories.ImageRepository
	folderRepo repositories.FolderRepository
	files      FileStore
	validator  *ResourceValidator
	maxBytes   int64
	logger     *slog.Logger
}

// NewImageService creates a new image service. Uploads larger than maxBytes
// are rejected.
func NewImageService(
	imageRepo repositories.ImageRepository,
	folderRepo repositories.FolderRepository,
	files FileStore,
	validator *ResourceValidator,
	maxBytes int64,
	logger *slog.Logger,
) services.ImageService {
	return &imageService{
		imageRepo:  imageRepo,
		folderRepo: folderRepo,
		files:      files,
		validator:  validator,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// UploadImage validates the upload, stores the file and records the image.
// The folder is checked before anything touches the disk.
func (s *imageService) UploadImage(ctx context.Context, ownerID string, req *services.UploadImageRequest) (*models.Image, error) {
	if req.Body == nil {
		return nil, domain.NewValidation("Please upload a file")
	}
	if !isImageType(req.ContentType) {
		return nil, domain.NewValidation("Please upload an image file")
	}
	if req.Size > s.maxBytes {
		return nil, domain.NewValidation(fmt.Sprintf("File size exceeds the %dMB limit", s.maxBytes>>20))
	}

	name, err := normalizeImageName(req.Name, req.FileName)
	if err != nil {
		return nil, err
	}

	folder, err := s.validator.ResolveFolder(ctx, ownerID, req.FolderID, "Folder not found")
	if err != nil {
		return nil, err
	}

	fieldName := req.FieldName
	if fieldName == "" {
		fieldName = "image"
	}
	stored, err := s.files.Save(fieldName, req.FileName, req.Body)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	image := &models.Image{
		Name:     name,
		OwnerID:  ownerID,
		ImageURL: s.files.URL(req.BaseURL, stored),
	}
	if folder != nil {
		image.FolderID = &folder.ID
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if rmErr := s.files.Remove(stored); rmErr != nil {
			s.logger.Error("failed to remove upload after insert error", "file", stored, "error", rmErr)
		}
		return nil, err
	}
	if folder != nil {
		image.FolderName = folder.Name
	}

	s.logger.Info("image uploaded",
		"id", image.ID,
		"name", image.Name,
		"owner_id", ownerID,
		"folder_id", image.FolderID,
		"file", stored,
		"size", req.Size,
	)

	return image, nil
}

// ListImages lists the owner's images, newest first
func (s *imageService) ListImages(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error) {
	if err := filter.Validate(config.MaxListLimit); err != nil {
		return nil, domain.NewValidation(err.Error())
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.FolderID != nil && strings.TrimSpace(*filter.FolderID) == "" {
		filter.FolderID = nil
	}

	images, err := s.imageRepo.Find(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return s.withFolderNames(ctx, ownerID, images), nil
}

// SearchImages runs a text search over the owner's image names
func (s *imageService) SearchImages(ctx context.Context, ownerID, query string) ([]models.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidation("Please provide a search term")
	}

	images, err := s.imageRepo.Find(ctx, ownerID, models.ImageFilter{Search: query})
	if err != nil {
		return nil, err
	}
	return s.withFolderNames(ctx, ownerID, images), nil
}

// DeleteImage removes the record, then the stored file. A file that cannot be
// removed is logged and otherwise ignored.
func (s *imageService) DeleteImage(ctx context.Context, ownerID, id string) error {
	image, err := s.imageRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound("Image not found or unauthorized")
		}
		return err
	}

	if err := s.imageRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound("Image not found or unauthorized")
		}
		return err
	}

	if name := s.files.NameFromURL(image.ImageURL); name == "" {
		s.logger.Warn("image url does not point at a stored file", "id", id, "image_url", image.ImageURL)
	} else if err := s.files.Remove(name); err != nil {
		s.logger.Error("failed to remove image file", "id", id, "file", name, "error", err)
	}

	s.logger.Info("image deleted", "id", id, "owner_id", ownerID)
	return nil
}

// withFolderNames fills FolderName for images whose folder still exists.
// A lookup failure leaves the names empty rather than failing the listing.
func (s *imageService) withFolderNames(ctx context.Context, ownerID string, images []models.Image) []models.Image {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, img := range images {
		if img.FolderID == nil {
			continue
		}
		if _, ok := seen[*img.FolderID]; !ok {
			seen[*img.FolderID] = struct{}{}
			ids = append(ids, *img.FolderID)
		}
	}
	if len(ids) == 0 {
		return images
	}

	folders, err := s.folderRepo.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		s.logger.Warn("failed to load folder names", "owner_id", ownerID, "error", err)
		return images
	}
	for i := range images {
		if images[i].FolderID == nil {
			continue
		}
		if folder, ok := folders[*images[i].FolderID]; ok {
			images[i].FolderName = folder.Name
		}
	}
	return images
}

// isImageType reports whether a declared media type is an image/* type
func isImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// fileStem returns the base name of a client file name without its extension
func fileStem(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
