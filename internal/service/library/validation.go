package library

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"imagefolders/internal/config"
	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^` + regexp.QuoteMeta(config.ReservedNameChars) + `]+$`)

// ResourceValidator resolves folder references supplied by a caller,
// hiding other owners' folders behind not-found errors
type ResourceValidator struct {
	folderRepo repositories.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo repositories.FolderRepository) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo}
}

// ResolveFolder returns the owner's folder named by folderID.
// Returns nil, nil for an absent or blank id (the root).
// A missing or foreign folder is a domain.NotFoundError carrying notFoundMsg.
func (v *ResourceValidator) ResolveFolder(ctx context.Context, ownerID string, folderID *string, notFoundMsg string) (*models.Folder, error) {
	if folderID == nil || strings.TrimSpace(*folderID) == "" {
		return nil, nil
	}

	folder, err := v.folderRepo.GetByID(ctx, ownerID, strings.TrimSpace(*folderID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(notFoundMsg)
		}
		return nil, fmt.Errorf("resolve folder: %w", err)
	}
	return folder, nil
}

// normalizeFolderName trims name and checks it against the folder name rules
func normalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("Folder name is required"),
		maxUTF16Length(config.MaxFolderNameLength,
			fmt.Sprintf("Folder name must be at most %d characters", config.MaxFolderNameLength)),
		validation.Match(folderNamePattern).Error("Folder name contains invalid characters"),
	)
	if err != nil {
		return "", domain.NewValidation(err.Error())
	}
	return name, nil
}

// normalizeImageName trims name, falling back to the uploaded file's name
// without its extension
func normalizeImageName(name, fileName string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(fileStem(fileName))
	}
	err := validation.Validate(name,
		validation.Required.Error("Please add an image name"),
		maxUTF16Length(config.MaxImageNameLength,
			fmt.Sprintf("Image name must be at most %d characters", config.MaxImageNameLength)),
	)
	if err != nil {
		return "", domain.NewValidation(err.Error())
	}
	return name, nil
}

// maxUTF16Length limits a string by UTF-16 code units, so characters outside
// the Basic Multilingual Plane count twice
func maxUTF16Length(max int, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		n := 0
		for _, r := range s {
			n += utf16.RuneLen(r)
		}
		if n > max {
			return errors.New(message)
		}
		return nil
	})
}
