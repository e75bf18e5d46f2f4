package models

import (
	"time"
)

// Folder is a named node in a user's folder hierarchy.
//
// Path holds the names of the folder's ancestors, root first. It is computed
// once at creation from the parent's Path plus the parent's Name and is not
// rewritten when an ancestor is later renamed.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"user"`
	ParentID  *string   `json:"parentFolder"` // nil = root level
	Path      []string  `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsRoot returns true if the folder is at the root level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// ChildPath returns the ancestor path a direct child of f receives
func (f *Folder) ChildPath() []string {
	path := make([]string, 0, len(f.Path)+1)
	path = append(path, f.Path...)
	return append(path, f.Name)
}
