// Package repository selects the persistence backend named by the
// configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"imagefolders/internal/config"
	"imagefolders/internal/domain/repositories"
	"imagefolders/internal/repository/memory"
	"imagefolders/internal/repository/mongo"
	"imagefolders/internal/repository/postgres"
)

// Open connects the configured store driver
func Open(ctx context.Context, cfg config.Store, logger *slog.Logger) (*repositories.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store: data is lost on restart")
		return memory.NewStore(), nil
	case config.DriverPostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL, cfg.TablePrefix, cfg.SearchLanguage, logger)
	case config.DriverMongo:
		return mongo.NewStore(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
