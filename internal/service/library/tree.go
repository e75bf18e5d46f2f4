package library

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetFolderTree builds the owner's nested folder forest
func (s *treeService) GetFolderTree(ctx context.Context, ownerID string) ([]*models.FolderNode, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	forest, promoted := buildForest(folders)
	if promoted > 0 {
		s.logger.Warn("folder parent cycle cut while building tree",
			"owner_id", ownerID,
			"promoted_roots", promoted,
		)
	}

	s.logger.Debug("folder tree built",
		"owner_id", ownerID,
		"folder_count", len(folders),
		"root_count", len(forest),
	)

	return forest, nil
}

// buildForest nests folders under their parents.
//
// Folders without a parent, or whose parent is not among folders, are roots.
// Every level is sorted by name. Folders that are unreachable from any root
// (they sit on a parent cycle) are promoted to roots one at a time and the
// edge leading back into an already placed folder is dropped, so each folder
// appears exactly once. promoted counts those extra roots.
func buildForest(folders []models.Folder) (forest []*models.FolderNode, promoted int) {
	nodes := make(map[string]*models.FolderNode, len(folders))
	for i := range folders {
		nodes[folders[i].ID] = &models.FolderNode{
			Folder:   folders[i],
			Children: []*models.FolderNode{},
		}
	}

	roots := make([]*models.FolderNode, 0)
	for i := range folders {
		node := nodes[folders[i].ID]
		if folders[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*folders[i].ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	visited := make(map[string]bool, len(nodes))
	descend := func(root *models.FolderNode) {
		visited[root.ID] = true
		stack := []*models.FolderNode{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			kept := node.Children[:0]
			for _, child := range node.Children {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				kept = append(kept, child)
			}
			node.Children = kept
			sortNodes(node.Children)
			stack = append(stack, node.Children...)
		}
	}

	sortNodes(roots)
	for _, root := range roots {
		descend(root)
	}

	if len(visited) < len(nodes) {
		stranded := make([]*models.FolderNode, 0, len(nodes)-len(visited))
		for i := range folders {
			if !visited[folders[i].ID] {
				stranded = append(stranded, nodes[folders[i].ID])
			}
		}
		sortNodes(stranded)
		for _, node := range stranded {
			if visited[node.ID] {
				continue
			}
			descend(node)
			roots = append(roots, node)
			promoted++
		}
		sortNodes(roots)
	}

	return roots, promoted
}

// sortNodes orders siblings by name in code point order, then by creation
// time and id so equal names have a stable order
func sortNodes(nodes []*models.FolderNode) {
	// A Collator keeps internal buffers and is not safe for concurrent use
	col := collate.New(language.Und)
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
