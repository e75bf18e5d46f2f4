package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"imagefolders/internal/auth"
	"imagefolders/internal/config"
	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/repository"
	"imagefolders/internal/repository/postgres"
	authsvc "imagefolders/internal/service/auth"
	"imagefolders/internal/service/library"

	"github.com/joho/godotenv"
)

// seedFolders lists demo folders as slash-separated paths, parents first
var seedFolders = []string{
	"Photos",
	"Photos/Travel",
	"Photos/Travel/2024",
	"Photos/Family",
	"Screenshots",
	"Documents",
	"Documents/Receipts",
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop the prefixed tables before seeding (postgres only)")
	name := flag.String("name", "Demo User", "Display name of the demo account")
	email := flag.String("email", "demo@example.com", "Email of the demo account")
	password := flag.String("password", "demo1234", "Password of the demo account")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: -drop-tables is not allowed in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	if *dropTables {
		if err := dropTablesFor(ctx, cfg, logger); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	store, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close(ctx)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}
	authService := authsvc.NewAuthService(store.Users, tokens, auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)
	folderService := library.NewFolderService(store.Folders, library.NewResourceValidator(store.Folders), logger)

	req := &services.RegisterRequest{Name: *name, Email: *email, Password: *password}
	var created int
	err = store.Tx.ExecTx(ctx, func(ctx context.Context) error {
		userID, err := ensureUser(ctx, store, authService, req)
		if err != nil {
			return err
		}
		created, err = seedFolderTree(ctx, store, folderService, userID, seedFolders)
		return err
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("seeding complete",
		"store", cfg.Store.Driver,
		"email", strings.ToLower(*email),
		"folders_created", created,
	)
}

// ensureUser returns the id of the account with req.Email, registering it
// first when missing. The lookup comes first so a postgres transaction never
// sees a failed insert.
func ensureUser(ctx context.Context, store *repositories.Store, authService services.AuthService, req *services.RegisterRequest) (string, error) {
	existing, err := store.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("look up demo user: %w", err)
	}

	result, err := authService.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register demo user: %w", err)
	}
	return result.User.ID, nil
}

// seedFolderTree creates every path that does not exist yet and returns how
// many folders it created
func seedFolderTree(ctx context.Context, store *repositories.Store, folderService services.FolderService, ownerID string, paths []string) (int, error) {
	byPath := make(map[string]*models.Folder, len(paths))
	created := 0

	for _, path := range paths {
		parentPath, name := "", path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			parentPath, name = path[:i], path[i+1:]
		}

		var parentID *string
		if parentPath != "" {
			parent, ok := byPath[parentPath]
			if !ok {
				return created, fmt.Errorf("seed path %q listed before its parent", path)
			}
			parentID = &parent.ID
		}

		existing, err := store.Folders.FindByName(ctx, ownerID, parentID, name)
		if err != nil {
			return created, fmt.Errorf("look up %q: %w", path, err)
		}
		if existing != nil {
			byPath[path] = existing
			continue
		}

		folder, err := folderService.CreateFolder(ctx, ownerID, &services.CreateFolderRequest{Name: name, ParentID: parentID})
		if err != nil {
			return created, fmt.Errorf("create %q: %w", path, err)
		}
		byPath[path] = folder
		created++
	}
	return created, nil
}

// dropTablesFor removes the prefixed postgres tables; other drivers are left alone
func dropTablesFor(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Store.Driver != config.DriverPostgres {
		logger.Warn("-drop-tables ignored", "store", cfg.Store.Driver)
		return nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.Store.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.DropSchema(ctx, pool, postgres.NewTableNames(cfg.Store.TablePrefix)); err != nil {
		return err
	}
	logger.Info("tables dropped", "table_prefix", cfg.Store.TablePrefix)
	return nil
}
