package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"imagefolders/internal/auth"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/repository/memory"
	authsvc "imagefolders/internal/service/auth"
	"imagefolders/internal/service/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()

	tokens, err := auth.NewTokenManager("seed-secret", time.Hour, logger)
	require.NoError(t, err)
	authService := authsvc.NewAuthService(store.Users, tokens, auth.NewBcryptHasher(bcrypt.MinCost), logger)
	folderService := library.NewFolderService(store.Folders, library.NewResourceValidator(store.Folders), logger)
	req := &services.RegisterRequest{Name: "Demo", Email: "Demo@Example.com", Password: "demo1234"}

	userID, err := ensureUser(ctx, store, authService, req)
	require.NoError(t, err)
	created, err := seedFolderTree(ctx, store, folderService, userID, seedFolders)
	require.NoError(t, err)
	assert.Equal(t, len(seedFolders), created)

	again, err := ensureUser(ctx, store, authService, req)
	require.NoError(t, err)
	assert.Equal(t, userID, again)
	created, err = seedFolderTree(ctx, store, folderService, userID, seedFolders)
	require.NoError(t, err)
	assert.Zero(t, created)

	tree, err := library.NewTreeService(store.Folders, logger).GetFolderTree(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Documents", tree[0].Name)
	assert.Equal(t, "Photos", tree[1].Name)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, []string{"Photos", "Travel"}, tree[1].Children[1].Children[0].Path)
}

func TestSeedFolderTree_ParentMustComeFirst(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	folderService := library.NewFolderService(store.Folders, library.NewResourceValidator(store.Folders), logger)

	_, err := seedFolderTree(context.Background(), store, folderService, "owner", []string{"A/B"})
	assert.Error(t, err)
}
