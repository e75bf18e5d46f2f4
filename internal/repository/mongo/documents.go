package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"imagefolders/internal/domain/models"
)

type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type folderDocument struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	Name         string         `bson:"name"`
	User         bson.ObjectID  `bson:"user"`
	ParentFolder *bson.ObjectID `bson:"parentFolder"`
	Path         []string       `bson:"path"`
	CreatedAt    time.Time      `bson:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt"`
}

type imageDocument struct {
	ID        bson.ObjectID  `bson:"_id,omitempty"`
	Name      string         `bson:"name"`
	User      bson.ObjectID  `bson:"user"`
	Folder    *bson.ObjectID `bson:"folder"`
	ImageURL  string         `bson:"imageUrl"`
	CreatedAt time.Time      `bson:"createdAt"`
}

// timestamp truncates to the millisecond precision BSON dates keep
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// parseID converts a hex id; ok is false for anything that is not an ObjectID
func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	return oid, err == nil
}

// parseOptionalID converts a nullable hex id. A non-nil invalid id reports !ok.
func parseOptionalID(id *string) (*bson.ObjectID, bool) {
	if id == nil {
		return nil, true
	}
	oid, ok := parseID(*id)
	if !ok {
		return nil, false
	}
	return &oid, true
}

func hexOrNil(oid *bson.ObjectID) *string {
	if oid == nil {
		return nil
	}
	s := oid.Hex()
	return &s
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

func (d *folderDocument) toModel() models.Folder {
	path := d.Path
	if path == nil {
		path = []string{}
	}
	return models.Folder{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		OwnerID:   d.User.Hex(),
		ParentID:  hexOrNil(d.ParentFolder),
		Path:      path,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *imageDocument) toModel() models.Image {
	return models.Image{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		OwnerID:   d.User.Hex(),
		FolderID:  hexOrNil(d.Folder),
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}
