package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
)

// ImageStore is the MongoDB implementation of repositories.ImageRepository
type ImageStore struct {
	db *mongo.Database
}

// NewImageStore creates a new ImageStore.
func NewImageStore(db *mongo.Database) *ImageStore {
	return &ImageStore{db: db}
}

func imageNotFound(id string) error {
	return domain.NewNotFound(fmt.Sprintf("image %s not found", id))
}

// Create inserts an image document
func (s *ImageStore) Create(ctx context.Context, image *models.Image) error {
	owner, ok := parseID(image.OwnerID)
	if !ok {
		return fmt.Errorf("invalid owner id %q", image.OwnerID)
	}
	folder, ok := parseOptionalID(image.FolderID)
	if !ok {
		return domain.NewNotFound("Folder not found")
	}

	doc := imageDocument{
		Name:      image.Name,
		User:      owner,
		Folder:    folder,
		ImageURL:  image.ImageURL,
		CreatedAt: timestamp(),
	}

	res, err := s.db.Collection(imageCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}

	doc.ID = res.InsertedID.(bson.ObjectID)
	*image = doc.toModel()
	return nil
}

// GetByID finds an image owned by ownerID
func (s *ImageStore) GetByID(ctx context.Context, ownerID, id string) (*models.Image, error) {
	owner, ok1 := parseID(ownerID)
	oid, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return nil, imageNotFound(id)
	}

	var doc imageDocument
	err := s.db.Collection(imageCollection).FindOne(ctx, bson.M{"_id": oid, "user": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, imageNotFound(id)
		}
		return nil, fmt.Errorf("find image: %w", err)
	}

	image := doc.toModel()
	return &image, nil
}

// Find lists the owner's images matching filter, newest first
func (s *ImageStore) Find(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []models.Image{}, nil
	}
	query, ok := imageQuery(owner, filter)
	if !ok {
		return []models.Image{}, nil
	}

	opts := options.Find().SetSort(newestFirst())
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := s.db.Collection(imageCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}

	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}

	images := make([]models.Image, 0, len(docs))
	for i := range docs {
		images = append(images, docs[i].toModel())
	}
	return images, nil
}

// Delete removes an image document
func (s *ImageStore) Delete(ctx context.Context, ownerID, id string) error {
	owner, ok1 := parseID(ownerID)
	oid, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return imageNotFound(id)
	}

	res, err := s.db.Collection(imageCollection).DeleteOne(ctx, bson.M{"_id": oid, "user": owner})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return imageNotFound(id)
	}
	return nil
}

// imageQuery builds the find filter. ok is false when the folder id cannot
// match any document.
func imageQuery(owner bson.ObjectID, filter models.ImageFilter) (bson.M, bool) {
	query := bson.M{"user": owner}

	if filter.FolderID != nil {
		folder, ok := parseID(*filter.FolderID)
		if !ok {
			return nil, false
		}
		query["folder"] = folder
	}

	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	return query, true
}
