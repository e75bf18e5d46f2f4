package handler

import (
	"net/http"
)

// Handlers groups the handlers served under the API prefix
type Handlers struct {
	Auth    *AuthHandler
	Folders *FolderHandler
	Tree    *TreeHandler
	Images  *ImageHandler
}

// RegisterRoutes mounts the JSON API under prefix (e.g. "/api/v1").
// requireAuth wraps every route except the auth endpoints.
func RegisterRoutes(mux *http.ServeMux, prefix string, h Handlers, requireAuth func(http.Handler) http.Handler) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}

	// Auth routes
	mux.HandleFunc("POST "+prefix+"/auth/register", h.Auth.Register)
	mux.HandleFunc("POST "+prefix+"/auth/login", h.Auth.Login)
	mux.HandleFunc("POST "+prefix+"/auth/logout", h.Auth.Logout)

	// Folder routes
	mux.Handle("GET "+prefix+"/folders", protect(h.Folders.ListFolders))
	mux.Handle("POST "+prefix+"/folders", protect(h.Folders.CreateFolder))
	mux.Handle("GET "+prefix+"/folders/tree", protect(h.Tree.GetTree)) // more specific than {id}
	mux.Handle("GET "+prefix+"/folders/{id}", protect(h.Folders.GetFolder))
	mux.Handle("PUT "+prefix+"/folders/{id}", protect(h.Folders.RenameFolder))
	mux.Handle("DELETE "+prefix+"/folders/{id}", protect(h.Folders.DeleteFolder))

	// Image routes
	mux.Handle("GET "+prefix+"/images", protect(h.Images.ListImages))
	mux.Handle("POST "+prefix+"/images", protect(h.Images.UploadImage))
	mux.Handle("GET "+prefix+"/images/search", protect(h.Images.SearchImages))
	mux.Handle("DELETE "+prefix+"/images/{id}", protect(h.Images.DeleteImage))
}
