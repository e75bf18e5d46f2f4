package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"imagefolders/internal/auth"
	"imagefolders/internal/config"
	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const invalidCredentialsMsg = "Invalid credentials"

type authService struct {
	users  repositories.UserRepository
	tokens auth.TokenManager
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	tokens auth.TokenManager,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates an account and signs the caller in
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*models.AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateRegisterRequest(req); err != nil {
		return nil, domain.NewValidation(err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.NewValidation("Please provide an email and password")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("login for unknown email")
			return nil, domain.NewUnauthorized(invalidCredentialsMsg)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.logger.Debug("login with wrong password", "user_id", user.ID)
		return nil, domain.NewUnauthorized(invalidCredentialsMsg)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issue(user)
}

// Authenticate resolves a bearer token to a still existing user
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, domain.NewUnauthorized("Not authorized to access this route")
	}

	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.GetUserID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorized("Not authorized to access this route")
		}
		return nil, err
	}

	return &models.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}, nil
}

func (s *authService) issue(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.AuthResult{Token: token, User: user}, nil
}

func validateRegisterRequest(req *services.RegisterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("Please add a name"),
			validation.RuneLength(1, config.MaxUserNameLength),
		),
		validation.Field(&req.Email,
			validation.Required.Error("Please add an email"),
			is.EmailFormat.Error("Please add a valid email"),
		),
		validation.Field(&req.Password,
			validation.Required.Error("Please add a password"),
			validation.RuneLength(config.MinPasswordLength, 0).
				Error(fmt.Sprintf("Password must be at least %d characters", config.MinPasswordLength)),
			validation.Length(0, config.MaxPasswordBytes).
				Error(fmt.Sprintf("Password must be at most %d bytes", config.MaxPasswordBytes)),
		),
	)
}
