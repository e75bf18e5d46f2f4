package models

// FolderNode is a folder together with its sorted subfolders
type FolderNode struct {
	Folder
	Children []*FolderNode `json:"children"`
}
