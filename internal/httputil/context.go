package httputil

import (
	"context"
	"net/http"

	"imagefolders/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	identityKey contextKey = "identity"
)

// WithIdentity adds the authenticated caller to the request context
func WithIdentity(r *http.Request, identity *models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the authenticated caller, or nil outside RequireAuth
func GetIdentity(r *http.Request) *models.Identity {
	identity, _ := r.Context().Value(identityKey).(*models.Identity)
	return identity
}

// GetUserID retrieves the caller's user id, returns empty string if not found
func GetUserID(r *http.Request) string {
	if identity := GetIdentity(r); identity != nil {
		return identity.UserID
	}
	return ""
}
