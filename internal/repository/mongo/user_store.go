package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
)

// UserStore is the MongoDB implementation of repositories.UserRepository
type UserStore struct {
	db *mongo.Database
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user document; the unique email index rejects duplicates
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{
		Name:      user.Name,
		Email:     strings.ToLower(user.Email),
		Password:  user.PasswordHash,
		CreatedAt: timestamp(),
	}

	res, err := s.db.Collection(userCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{
				Message:      "Duplicate field value entered",
				ResourceType: "user",
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(bson.ObjectID)
	*user = *doc.toModel()
	return nil
}

// GetByID finds a user by id
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.NewNotFound(fmt.Sprintf("user %s not found", id))
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail finds a user by lower-cased email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.db.Collection(userCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}
