// Package mongo stores users, folders and images in MongoDB collections of
// the same names.
package mongo

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"imagefolders/internal/config"
	"imagefolders/internal/domain/repositories"
)

const (
	userCollection   = "users"
	folderCollection = "folders"
	imageCollection  = "images"
)

// NewClient connects to MongoDB and verifies the connection with a ping.
// When a CA bundle is configured the connection uses TLS with that bundle
// as the only trusted root, which is what AWS DocumentDB requires.
func NewClient(ctx context.Context, cfg config.Store) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	if cfg.MongoCAFile != "" {
		tlsConfig, err := createTLSConfig(cfg.MongoCAFile)
		if err != nil {
			return nil, fmt.Errorf("create TLS config: %w", err)
		}
		clientOptions.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client, nil
}

func createTLSConfig(caFilePath string) (*tls.Config, error) {
	pem, err := os.ReadFile(caFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("CA file not found at path: %s", caFilePath)
		}
		return nil, fmt.Errorf("read CA file: %w", err)
	}

	certs := x509.NewCertPool()
	if !certs.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates in CA file %s", caFilePath)
	}

	return &tls.Config{RootCAs: certs}, nil
}

// NewStore connects, ensures indexes and returns the mongo-backed repositories
func NewStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (*repositories.Store, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	if err := EnsureIndexes(ctx, db, cfg.SearchLanguage); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("mongo store ready", "database", cfg.MongoDatabase)

	return &repositories.Store{
		Users:   NewUserStore(db),
		Folders: NewFolderStore(db),
		Images:  NewImageStore(db),
		Tx:      repositories.NoTx{},
		Close:   client.Disconnect,
	}, nil
}
