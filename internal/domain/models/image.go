package models

import (
	"fmt"
	"time"
)

// Image is an uploaded picture, optionally filed in one of the owner's folders.
//
// FolderID may dangle: deleting a folder does not touch its images.
type Image struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"user"`
	FolderID   *string   `json:"folder"`
	FolderName string    `json:"folderName,omitempty"` // populated on reads when the folder still exists
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ImageFilter narrows an owner's images
type ImageFilter struct {
	// FolderID limits results to one folder; nil = every folder and the root
	FolderID *string

	// Search is a full-text query against image names; empty = no text filter
	Search string

	// Limit caps the number of results; 0 = unlimited
	Limit  int
	Offset int
}

// Validate checks pagination bounds
func (f *ImageFilter) Validate(maxLimit int) error {
	if f.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if f.Limit > maxLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", maxLimit, f.Limit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	return nil
}
