package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"

	"github.com/google/uuid"
)

// UserRepository is an in-memory repositories.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &domain.ConflictError{
				Message:      "Duplicate field value entered",
				ResourceType: "user",
				ResourceID:   existing.ID,
			}
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("user %s not found", id)}
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}
