package memory

import (
	"context"
	"errors"
	"testing"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserRepository_EmailIsUniqueAndCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &models.User{Name: "Ann", Email: "Ann@Example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ann@example.com", user.Email)

	err := repo.Create(ctx, &models.User{Name: "Other", Email: "ANN@example.com"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	found, err := repo.GetByEmail(ctx, "ann@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFolderRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository()

	folder := &models.Folder{Name: "Vacation", OwnerID: "a"}
	require.NoError(t, repo.Create(ctx, folder))

	_, err := repo.GetByID(ctx, "b", folder.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Delete(ctx, "b", folder.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := repo.ListByOwner(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := repo.GetByIDs(ctx, "b", []string{folder.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFolderRepository_SiblingNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository()

	root := &models.Folder{Name: "Vacation", OwnerID: "a"}
	require.NoError(t, repo.Create(ctx, root))

	err := repo.Create(ctx, &models.Folder{Name: "Vacation", OwnerID: "a"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// Same name is fine for another owner or another parent
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "Vacation", OwnerID: "b"}))
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "Vacation", OwnerID: "a", ParentID: strPtr(root.ID)}))

	found, err := repo.FindByName(ctx, "a", nil, "Vacation")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, root.ID, found.ID)

	none, err := repo.FindByName(ctx, "a", nil, "vacation")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFolderRepository_UpdateAndChildren(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository()

	parent := &models.Folder{Name: "Vacation", OwnerID: "a"}
	require.NoError(t, repo.Create(ctx, parent))
	sibling := &models.Folder{Name: "Work", OwnerID: "a"}
	require.NoError(t, repo.Create(ctx, sibling))

	has, err := repo.HasChildren(ctx, "a", parent.ID)
	require.NoError(t, err)
	assert.False(t, has)

	child := &models.Folder{Name: "Beach", OwnerID: "a", ParentID: strPtr(parent.ID), Path: parent.ChildPath()}
	require.NoError(t, repo.Create(ctx, child))

	has, err = repo.HasChildren(ctx, "a", parent.ID)
	require.NoError(t, err)
	assert.True(t, has)

	rename := *sibling
	rename.Name = "Vacation"
	err = repo.Update(ctx, &rename)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	rename.Name = "Holidays"
	require.NoError(t, repo.Update(ctx, &rename))
	got, err := repo.GetByID(ctx, "a", sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, "Holidays", got.Name)

	list, err := repo.ListByOwner(ctx, "a")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, child.ID, list[0].ID, "newest first")
	assert.Equal(t, []string{"Vacation"}, list[0].Path)
}

func TestFolderRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository()

	folder := &models.Folder{Name: "Vacation", OwnerID: "a", Path: []string{}}
	require.NoError(t, repo.Create(ctx, folder))

	got, err := repo.GetByID(ctx, "a", folder.ID)
	require.NoError(t, err)
	got.Name = "changed"
	got.Path = append(got.Path, "x")

	again, err := repo.GetByID(ctx, "a", folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", again.Name)
	assert.Empty(t, again.Path)
}

func TestImageRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewImageRepository()

	create := func(owner, name string, folder *string) *models.Image {
		img := &models.Image{Name: name, OwnerID: owner, FolderID: folder, ImageURL: "u"}
		require.NoError(t, repo.Create(ctx, img))
		return img
	}
	sunset := create("a", "Beach sunset", strPtr("f1"))
	create("a", "Mountain lake", nil)
	dog := create("a", "my-dog", strPtr("f2"))
	create("b", "Beach party", nil)

	tests := []struct {
		name   string
		filter models.ImageFilter
		want   []string
	}{
		{"all newest first", models.ImageFilter{}, []string{"my-dog", "Mountain lake", "Beach sunset"}},
		{"by folder", models.ImageFilter{FolderID: strPtr("f1")}, []string{"Beach sunset"}},
		{"search any word", models.ImageFilter{Search: "beach dog"}, []string{"my-dog", "Beach sunset"}},
		{"search no match", models.ImageFilter{Search: "zzz"}, []string{}},
		{"limit", models.ImageFilter{Limit: 1}, []string{"my-dog"}},
		{"offset", models.ImageFilter{Offset: 2}, []string{"Beach sunset"}},
		{"offset past end", models.ImageFilter{Offset: 9}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images, err := repo.Find(ctx, "a", tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(images))
			for _, img := range images {
				names = append(names, img.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := repo.GetByID(ctx, "b", sunset.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Delete(ctx, "a", dog.ID))
	err = repo.Delete(ctx, "a", dog.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMatchesText(t *testing.T) {
	assert.True(t, matchesText("Beach-Sunset_2024", "sunset"))
	assert.True(t, matchesText("café day", "CAFÉ"))
	assert.False(t, matchesText("sunsets", "sunset"))
	assert.False(t, matchesText("anything", "  "))
}
