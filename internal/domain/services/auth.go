package services

import (
	"context"

	"imagefolders/internal/domain/models"
)

// AuthService registers users, issues session tokens and resolves them
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req *LoginRequest) (*models.AuthResult, error)

	// Authenticate resolves a bearer token to the caller's identity
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// RegisterRequest represents a sign-up request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a sign-in request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
