package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/httputil"
)

const notAuthorized = "Not authorized to access this route"

// RequireAuth resolves the bearer token of each request to an identity and
// rejects the request with 401 when that fails. Cookies are not consulted.
func RequireAuth(authService services.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, notAuthorized)
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.Error("authenticate request", "error", err, "path", r.URL.Path)
				}
				httputil.RespondError(w, http.StatusUnauthorized, notAuthorized)
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
