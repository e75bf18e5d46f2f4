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

// FolderStore is the MongoDB implementation of repositories.FolderRepository
type FolderStore struct {
	db *mongo.Database
}

// NewFolderStore creates a new FolderStore.
func NewFolderStore(db *mongo.Database) *FolderStore {
	return &FolderStore{db: db}
}

func folderNotFound(id string) error {
	return domain.NewNotFound(fmt.Sprintf("Folder not found with id of %s", id))
}

func folderConflict(name string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
	}
}

// Create inserts a new folder document into the folders collection.
func (s *FolderStore) Create(ctx context.Context, folder *models.Folder) error {
	owner, ok := parseID(folder.OwnerID)
	if !ok {
		return fmt.Errorf("invalid owner id %q", folder.OwnerID)
	}
	parent, ok := parseOptionalID(folder.ParentID)
	if !ok {
		return folderNotFound(*folder.ParentID)
	}

	now := timestamp()
	doc := folderDocument{
		Name:         folder.Name,
		User:         owner,
		ParentFolder: parent,
		Path:         folder.Path,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.Path == nil {
		doc.Path = []string{}
	}

	res, err := s.db.Collection(folderCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return folderConflict(folder.Name)
		}
		return fmt.Errorf("insert folder: %w", err)
	}

	doc.ID = res.InsertedID.(bson.ObjectID)
	*folder = doc.toModel()
	return nil
}

// GetByID finds a folder by its ID, ensuring it belongs to the specified owner.
func (s *FolderStore) GetByID(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	owner, ok1 := parseID(ownerID)
	oid, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return nil, folderNotFound(id)
	}

	var doc folderDocument
	err := s.db.Collection(folderCollection).FindOne(ctx, bson.M{"_id": oid, "user": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, folderNotFound(id)
		}
		return nil, fmt.Errorf("find folder: %w", err)
	}

	folder := doc.toModel()
	return &folder, nil
}

// GetByIDs finds the owner's folders among ids
func (s *FolderStore) GetByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*models.Folder, error) {
	found := make(map[string]*models.Folder, len(ids))
	owner, ok := parseID(ownerID)
	if !ok {
		return found, nil
	}

	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return found, nil
	}

	folders, err := s.find(ctx, bson.M{"user": owner, "_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	for i := range folders {
		found[folders[i].ID] = &folders[i]
	}
	return found, nil
}

// FindByName finds a sibling folder by exact name; nil, nil when absent
func (s *FolderStore) FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, nil
	}
	parent, ok := parseOptionalID(parentID)
	if !ok {
		return nil, nil
	}

	var doc folderDocument
	err := s.db.Collection(folderCollection).FindOne(ctx, siblingFilter(owner, parent, name)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find folder by name: %w", err)
	}

	folder := doc.toModel()
	return &folder, nil
}

// Update sets the folder's name and updatedAt
func (s *FolderStore) Update(ctx context.Context, folder *models.Folder) error {
	owner, ok1 := parseID(folder.OwnerID)
	oid, ok2 := parseID(folder.ID)
	if !ok1 || !ok2 {
		return folderNotFound(folder.ID)
	}

	res, err := s.db.Collection(folderCollection).UpdateOne(ctx,
		bson.M{"_id": oid, "user": owner},
		bson.M{"$set": bson.M{"name": folder.Name, "updatedAt": folder.UpdatedAt}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return folderConflict(folder.Name)
		}
		return fmt.Errorf("update folder: %w", err)
	}
	if res.MatchedCount == 0 {
		return folderNotFound(folder.ID)
	}
	return nil
}

// Delete removes a folder document
func (s *FolderStore) Delete(ctx context.Context, ownerID, id string) error {
	owner, ok1 := parseID(ownerID)
	oid, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return folderNotFound(id)
	}

	res, err := s.db.Collection(folderCollection).DeleteOne(ctx, bson.M{"_id": oid, "user": owner})
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if res.DeletedCount == 0 {
		return folderNotFound(id)
	}
	return nil
}

// HasChildren reports whether any folder has id as its parentFolder
func (s *FolderStore) HasChildren(ctx context.Context, ownerID, id string) (bool, error) {
	owner, ok1 := parseID(ownerID)
	oid, ok2 := parseID(id)
	if !ok1 || !ok2 {
		return false, nil
	}

	n, err := s.db.Collection(folderCollection).CountDocuments(ctx,
		bson.M{"user": owner, "parentFolder": oid},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count child folders: %w", err)
	}
	return n > 0, nil
}

// ListByOwner returns every folder of the owner, newest first
func (s *FolderStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []models.Folder{}, nil
	}
	return s.find(ctx, bson.M{"user": owner})
}

func (s *FolderStore) find(ctx context.Context, filter bson.M) ([]models.Folder, error) {
	opts := options.Find().SetSort(newestFirst())

	cursor, err := s.db.Collection(folderCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find folders: %w", err)
	}

	var docs []folderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}

	folders := make([]models.Folder, 0, len(docs))
	for i := range docs {
		folders = append(folders, docs[i].toModel())
	}
	return folders, nil
}

// siblingFilter matches a folder by name under parent; nil parent means root
func siblingFilter(owner bson.ObjectID, parent *bson.ObjectID, name string) bson.M {
	filter := bson.M{"user": owner, "name": name, "parentFolder": nil}
	if parent != nil {
		filter["parentFolder"] = *parent
	}
	return filter
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}
