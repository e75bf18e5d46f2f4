package mongo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"imagefolders/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageQuery(t *testing.T) {
	owner := bson.NewObjectID()
	folder := bson.NewObjectID()
	folderHex := folder.Hex()
	bad := "not-an-id"

	tests := []struct {
		name   string
		filter models.ImageFilter
		want   bson.M
		wantOK bool
	}{
		{
			name:   "owner only",
			filter: models.ImageFilter{},
			want:   bson.M{"user": owner},
			wantOK: true,
		},
		{
			name:   "folder and text",
			filter: models.ImageFilter{FolderID: &folderHex, Search: "beach"},
			want: bson.M{
				"user":   owner,
				"folder": folder,
				"$text":  bson.M{"$search": "beach"},
			},
			wantOK: true,
		},
		{
			name:   "malformed folder matches nothing",
			filter: models.ImageFilter{FolderID: &bad},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := imageQuery(owner, tt.filter)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSiblingFilter(t *testing.T) {
	owner := bson.NewObjectID()
	parent := bson.NewObjectID()

	root := siblingFilter(owner, nil, "Vacation")
	assert.Nil(t, root["parentFolder"])
	assert.Contains(t, root, "parentFolder")

	child := siblingFilter(owner, &parent, "Beach")
	assert.Equal(t, parent, child["parentFolder"])
	assert.Equal(t, "Beach", child["name"])
}

func TestDocumentConversion(t *testing.T) {
	owner := bson.NewObjectID()
	parent := bson.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := folderDocument{
		ID:           bson.NewObjectID(),
		Name:         "Beach",
		User:         owner,
		ParentFolder: &parent,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	folder := doc.toModel()
	assert.Equal(t, doc.ID.Hex(), folder.ID)
	assert.Equal(t, owner.Hex(), folder.OwnerID)
	require.NotNil(t, folder.ParentID)
	assert.Equal(t, parent.Hex(), *folder.ParentID)
	assert.Equal(t, []string{}, folder.Path)

	img := imageDocument{ID: bson.NewObjectID(), User: owner, Name: "x"}
	assert.Nil(t, img.toModel().FolderID)
}

func TestParseOptionalID(t *testing.T) {
	oid, ok := parseOptionalID(nil)
	assert.True(t, ok)
	assert.Nil(t, oid)

	bad := "zzz"
	_, ok = parseOptionalID(&bad)
	assert.False(t, ok)

	good := bson.NewObjectID().Hex()
	oid, ok = parseOptionalID(&good)
	assert.True(t, ok)
	assert.Equal(t, good, oid.Hex())
}

func TestTextLanguage(t *testing.T) {
	assert.Equal(t, "none", textLanguage("simple"))
	assert.Equal(t, "none", textLanguage(""))
	assert.Equal(t, "english", textLanguage("english"))
}

func TestIndexModels(t *testing.T) {
	idx := indexModels("english")
	assert.Len(t, idx[userCollection], 1)
	assert.Len(t, idx[folderCollection], 2)
	assert.Len(t, idx[imageCollection], 2)
}

func TestCreateTLSConfig(t *testing.T) {
	_, err := createTLSConfig(filepath.Join(t.TempDir(), "missing.pem"))
	assert.ErrorContains(t, err, "not found")

	empty := filepath.Join(t.TempDir(), "empty.pem")
	require.NoError(t, os.WriteFile(empty, []byte("not a cert"), 0o600))
	_, err = createTLSConfig(empty)
	assert.ErrorContains(t, err, "no certificates")
}
