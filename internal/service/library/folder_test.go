package library

import (
	"context"
	"errors"
	"strings"
	"testing"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFolder(t *testing.T, f *fixture, owner, name string, parent *models.Folder) *models.Folder {
	t.Helper()
	req := &services.CreateFolderRequest{Name: name}
	if parent != nil {
		req.ParentID = &parent.ID
	}
	folder, err := f.folders.CreateFolder(context.Background(), owner, req)
	require.NoError(t, err)
	return folder
}

func TestCreateFolder_AncestorPath(t *testing.T) {
	f := newFixture(t)

	vacation := createFolder(t, f, ownerA, "Vacation", nil)
	beach := createFolder(t, f, ownerA, "Beach", vacation)
	sand := createFolder(t, f, ownerA, "Sand", beach)

	assert.Nil(t, vacation.ParentID)
	assert.Equal(t, []string{}, vacation.Path)
	assert.Equal(t, []string{"Vacation"}, beach.Path)
	assert.Equal(t, []string{"Vacation", "Beach"}, sand.Path)
	require.NotNil(t, sand.ParentID)
	assert.Equal(t, beach.ID, *sand.ParentID)

	got, err := f.folders.GetFolder(context.Background(), ownerA, sand.ID)
	require.NoError(t, err)
	assert.Equal(t, sand, got)
}

func TestCreateFolder_NameValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Vacation", want: "Vacation"},
		{name: "trimmed", input: "  Summer 2024 ", want: "Summer 2024"},
		{name: "fifty runes", input: strings.Repeat("é", 50), want: strings.Repeat("é", 50)},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 51), wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "colon", input: "a:b", wantErr: true},
		{name: "star", input: "a*b", wantErr: true},
		{name: "question", input: "a?b", wantErr: true},
		{name: "quote", input: `a"b`, wantErr: true},
		{name: "angle", input: "a<b>", wantErr: true},
		{name: "pipe", input: "a|b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			folder, err := f.folders.CreateFolder(context.Background(), ownerA, &services.CreateFolderRequest{Name: tt.input})
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, folder.Name)
		})
	}
}

func TestCreateFolder_Parent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	theirs := createFolder(t, f, ownerB, "Private", nil)

	_, err := f.folders.CreateFolder(ctx, ownerA, &services.CreateFolderRequest{Name: "Sneaky", ParentID: &theirs.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Parent folder not found", err.Error())

	_, err = f.folders.CreateFolder(ctx, ownerA, &services.CreateFolderRequest{Name: "Ghost", ParentID: strPtr("missing")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	root, err := f.folders.CreateFolder(ctx, ownerA, &services.CreateFolderRequest{Name: "Root", ParentID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
}

func TestCreateFolder_DuplicateSiblings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vacation := createFolder(t, f, ownerA, "Vacation", nil)

	for _, name := range []string{"Vacation", " Vacation  "} {
		_, err := f.folders.CreateFolder(ctx, ownerA, &services.CreateFolderRequest{Name: name})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.Equal(t, "A folder with this name already exists in this location", err.Error())
	}

	// Case differs, parent differs, owner differs: all allowed
	createFolder(t, f, ownerA, "vacation", nil)
	createFolder(t, f, ownerA, "Vacation", vacation)
	createFolder(t, f, ownerB, "Vacation", nil)
}

func TestRenameFolder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vacation := createFolder(t, f, ownerA, "Vacation", nil)
	beach := createFolder(t, f, ownerA, "Beach", vacation)
	createFolder(t, f, ownerA, "Work", nil)

	renamed, err := f.folders.RenameFolder(ctx, ownerA, vacation.ID, &services.RenameFolderRequest{Name: " Holidays "})
	require.NoError(t, err)
	assert.Equal(t, "Holidays", renamed.Name)
	assert.Equal(t, vacation.Path, renamed.Path)

	got, err := f.folders.GetFolder(ctx, ownerA, vacation.ID)
	require.NoError(t, err)
	assert.Equal(t, "Holidays", got.Name)

	// Descendant paths keep the name they were created under
	child, err := f.folders.GetFolder(ctx, ownerA, beach.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vacation"}, child.Path)

	_, err = f.folders.RenameFolder(ctx, ownerA, vacation.ID, &services.RenameFolderRequest{Name: "Work"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = f.folders.RenameFolder(ctx, ownerA, vacation.ID, &services.RenameFolderRequest{Name: "Holidays"})
	assert.NoError(t, err, "renaming to its own name is not a conflict")

	_, err = f.folders.RenameFolder(ctx, ownerA, vacation.ID, &services.RenameFolderRequest{Name: "a|b"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.folders.RenameFolder(ctx, ownerB, vacation.ID, &services.RenameFolderRequest{Name: "Mine"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vacation := createFolder(t, f, ownerA, "Vacation", nil)
	beach := createFolder(t, f, ownerA, "Beach", vacation)

	err := f.folders.DeleteFolder(ctx, ownerA, vacation.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "Cannot delete folder that contains subfolders", err.Error())

	err = f.folders.DeleteFolder(ctx, ownerB, beach.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Images in a deleted folder keep their folder reference
	img := &models.Image{Name: "shell", OwnerID: ownerA, FolderID: &beach.ID, ImageURL: "http://x/uploads/a.png"}
	require.NoError(t, f.store.Images.Create(ctx, img))

	require.NoError(t, f.folders.DeleteFolder(ctx, ownerA, beach.ID))
	require.NoError(t, f.folders.DeleteFolder(ctx, ownerA, vacation.ID))

	list, err := f.folders.ListFolders(ctx, ownerA)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := f.store.Images.GetByID(ctx, ownerA, img.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.FolderID)
	assert.Equal(t, beach.ID, *kept.FolderID)

	err = f.folders.DeleteFolder(ctx, ownerA, vacation.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListFolders_NewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := createFolder(t, f, ownerA, "First", nil)
	second := createFolder(t, f, ownerA, "Second", nil)
	createFolder(t, f, ownerB, "Other", nil)

	list, err := f.folders.ListFolders(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
