package library

import (
	"context"
	"testing"
	"time"

	"imagefolders/internal/domain/models"
	"imagefolders/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatten walks a forest depth-first, checking sibling order on the way
func flatten(t *testing.T, nodes []*models.FolderNode, seen map[string]int) {
	t.Helper()
	for i, node := range nodes {
		if i > 0 {
			assert.LessOrEqual(t, nodes[i-1].Name, node.Name, "siblings must be sorted")
		}
		seen[node.ID]++
		flatten(t, node.Children, seen)
	}
}

func names(nodes []*models.FolderNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestGetFolderTree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	work := createFolder(t, f, ownerA, "Work", nil)
	vacation := createFolder(t, f, ownerA, "Vacation", nil)
	createFolder(t, f, ownerA, "Mountains", vacation)
	beach := createFolder(t, f, ownerA, "Beach", vacation)
	createFolder(t, f, ownerA, "Sand", beach)
	createFolder(t, f, ownerA, "Reports", work)
	createFolder(t, f, ownerA, "Archive", nil)
	createFolder(t, f, ownerB, "Elsewhere", nil)

	forest, err := f.tree.GetFolderTree(ctx, ownerA)
	require.NoError(t, err)

	assert.Equal(t, []string{"Archive", "Vacation", "Work"}, names(forest))
	assert.Equal(t, []string{"Beach", "Mountains"}, names(forest[1].Children))
	assert.Equal(t, []string{"Sand"}, names(forest[1].Children[0].Children))
	assert.Equal(t, []string{"Reports"}, names(forest[2].Children))

	seen := make(map[string]int)
	flatten(t, forest, seen)

	owned, err := f.folders.ListFolders(ctx, ownerA)
	require.NoError(t, err)
	assert.Len(t, seen, len(owned))
	for _, folder := range owned {
		assert.Equal(t, 1, seen[folder.ID], folder.Name)
	}
}

func TestGetFolderTree_Empty(t *testing.T) {
	f := newFixture(t)
	forest, err := f.tree.GetFolderTree(context.Background(), ownerA)
	require.NoError(t, err)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

func TestGetFolderTree_CycleTerminates(t *testing.T) {
	repo := memory.NewFolderRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	put := func(id, name string, parent *string) {
		repo.Put(models.Folder{ID: id, Name: name, OwnerID: ownerA, ParentID: parent, Path: []string{}, CreatedAt: base})
	}
	put("a", "Alpha", strPtr("b"))
	put("b", "Beta", strPtr("c"))
	put("c", "Gamma", strPtr("a"))
	put("self", "Self", strPtr("self"))
	put("root", "Root", nil)

	svc := NewTreeService(repo, discardLogger())

	done := make(chan []*models.FolderNode, 1)
	go func() {
		forest, err := svc.GetFolderTree(context.Background(), ownerA)
		assert.NoError(t, err)
		done <- forest
	}()

	select {
	case forest := <-done:
		seen := make(map[string]int)
		flatten(t, forest, seen)
		assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "self": 1, "root": 1}, seen)
		assert.Equal(t, []string{"Alpha", "Root", "Self"}, names(forest))
	case <-time.After(5 * time.Second):
		t.Fatal("tree assembly did not terminate")
	}
}

func TestBuildForest(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing parent becomes root", func(t *testing.T) {
		forest, promoted := buildForest([]models.Folder{
			{ID: "1", Name: "Orphan", ParentID: strPtr("gone"), CreatedAt: t0},
			{ID: "2", Name: "Home", CreatedAt: t0},
		})
		assert.Equal(t, 0, promoted)
		assert.Equal(t, []string{"Home", "Orphan"}, names(forest))
	})

	t.Run("case and accents do not split the alphabet", func(t *testing.T) {
		forest, _ := buildForest([]models.Folder{
			{ID: "1", Name: "zoo", CreatedAt: t0},
			{ID: "2", Name: "Zebra", CreatedAt: t0},
			{ID: "3", Name: "apple", CreatedAt: t0},
			{ID: "4", Name: "Épée", CreatedAt: t0},
			{ID: "5", Name: "10", CreatedAt: t0},
		})
		assert.Equal(t, []string{"10", "apple", "Épée", "Zebra", "zoo"}, names(forest))
	})

	t.Run("mixed case siblings", func(t *testing.T) {
		forest, _ := buildForest([]models.Folder{
			{ID: "p", Name: "Root", CreatedAt: t0},
			{ID: "1", Name: "cherry", ParentID: strPtr("p"), CreatedAt: t0},
			{ID: "2", Name: "Banana", ParentID: strPtr("p"), CreatedAt: t0},
			{ID: "3", Name: "apple", ParentID: strPtr("p"), CreatedAt: t0},
		})
		require.Len(t, forest, 1)
		assert.Equal(t, []string{"apple", "Banana", "cherry"}, names(forest[0].Children))
	})

	t.Run("equal names ordered by creation then id", func(t *testing.T) {
		forest, _ := buildForest([]models.Folder{
			{ID: "b", Name: "Same", CreatedAt: t0},
			{ID: "c", Name: "Same", CreatedAt: t0.Add(-time.Hour)},
			{ID: "a", Name: "Same", CreatedAt: t0},
		})
		require.Len(t, forest, 3)
		assert.Equal(t, "c", forest[0].ID)
		assert.Equal(t, "a", forest[1].ID)
		assert.Equal(t, "b", forest[2].ID)
	})

	t.Run("two node cycle promotes one root", func(t *testing.T) {
		forest, promoted := buildForest([]models.Folder{
			{ID: "x", Name: "X", ParentID: strPtr("y"), CreatedAt: t0},
			{ID: "y", Name: "Y", ParentID: strPtr("x"), CreatedAt: t0},
		})
		assert.Equal(t, 1, promoted)
		require.Len(t, forest, 1)
		assert.Equal(t, "X", forest[0].Name)
		require.Len(t, forest[0].Children, 1)
		assert.Equal(t, "Y", forest[0].Children[0].Name)
		assert.Empty(t, forest[0].Children[0].Children)
	})
}
