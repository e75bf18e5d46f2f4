package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// textLanguage maps a postgres-style search configuration name to a MongoDB
// text index language. "simple" has no stemming, which mongo calls "none".
func textLanguage(language string) string {
	switch language {
	case "", "simple":
		return "none"
	default:
		return language
	}
}

// indexModels lists the indexes each collection needs
func indexModels(language string) map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		userCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		folderCollection: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "parentFolder", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		imageCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "name", Value: "text"}}, Options: options.Index().SetDefaultLanguage(textLanguage(language))},
		},
	}
}

// EnsureIndexes creates missing indexes; existing ones are left alone
func EnsureIndexes(ctx context.Context, db *mongo.Database, language string) error {
	for collection, models := range indexModels(language) {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
