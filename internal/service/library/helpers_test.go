package library

import (
	"io"
	"log/slog"
	"testing"

	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/repository/memory"
	"imagefolders/internal/storage"

	"github.com/stretchr/testify/require"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

type fixture struct {
	store   *repositories.Store
	folders services.FolderService
	tree    services.TreeService
	images  services.ImageService
	files   *storage.DiskStorage
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := discardLogger()
	store := memory.NewStore()
	dir := t.TempDir()

	files, err := storage.NewDiskStorage(dir, "/uploads", logger)
	require.NoError(t, err)

	validator := NewResourceValidator(store.Folders)
	return &fixture{
		store:   store,
		folders: NewFolderService(store.Folders, validator, logger),
		tree:    NewTreeService(store.Folders, logger),
		images:  NewImageService(store.Images, store.Folders, files, validator, 10<<20, logger),
		files:   files,
		dir:     dir,
	}
}
