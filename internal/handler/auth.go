package handler

import (
	"log/slog"
	"net/http"
	"time"

	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/httputil"
)

const tokenCookie = "token"

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService  services.AuthService
	tokenTTL     time.Duration
	secureCookie bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler. Session cookies live as long as
// tokens and carry the Secure flag when secureCookie is set.
func NewAuthHandler(authService services.AuthService, tokenTTL time.Duration, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Register creates an account
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := parseBody(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.sendToken(w, http.StatusCreated, result)
}

// Login exchanges credentials for a token
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := parseBody(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.sendToken(w, http.StatusOK, result)
}

// Logout overwrites the session cookie. Bearer tokens stay valid until they expire.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.RespondEmpty(w, http.StatusOK)
}

func (h *AuthHandler) sendToken(w http.ResponseWriter, status int, result *models.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.RespondJSON(w, status, result)
}
