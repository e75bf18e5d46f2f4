package services

import (
	"context"
	"io"

	"imagefolders/internal/domain/models"
)

// ImageService handles image uploads, listing and removal
type ImageService interface {
	// UploadImage stores the file and records the image
	UploadImage(ctx context.Context, ownerID string, req *UploadImageRequest) (*models.Image, error)

	// ListImages lists the owner's images, optionally by folder and search text
	ListImages(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error)

	// SearchImages runs a full-text search over image names; query is required
	SearchImages(ctx context.Context, ownerID, query string) ([]models.Image, error)

	// DeleteImage removes the record and, best-effort, the stored file
	DeleteImage(ctx context.Context, ownerID, id string) error
}

// UploadImageRequest carries an already-received multipart file
type UploadImageRequest struct {
	Name        string
	FolderID    *string
	FieldName   string // multipart field the file arrived in
	FileName    string // client-side file name
	ContentType string // declared media type
	Size        int64
	Body        io.Reader

	// BaseURL is scheme://host of the current request, used to build ImageURL
	BaseURL string
}
