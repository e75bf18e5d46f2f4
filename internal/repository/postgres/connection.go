package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagefolders/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool           *pgxpool.Pool
	Tables         *TableNames
	SearchLanguage string // text search configuration, e.g. english or simple
	Logger         *slog.Logger
}

var searchLanguagePattern = regexp.MustCompile(`^[a-z_]+$`)

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users   string
	Folders string
	Images  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:   fmt.Sprintf("%susers", prefix),
		Folders: fmt.Sprintf("%sfolders", prefix),
		Images:  fmt.Sprintf("%simages", prefix),
	}
}

// CreateConnectionPool creates a pgx pool and verifies it with a ping.
//
// Port 6543 is the usual PgBouncer transaction pooler, which cannot hold
// prepared statements across transactions. There the pool switches to
// QueryExecModeCacheDescribe unless the connection string already picked a
// mode via default_query_exec_mode.
//
// Table names are interpolated with fmt.Sprintf before statements are
// prepared, so each prefix gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		logger.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewStore connects, bootstraps the schema and returns the postgres-backed
// repositories
func NewStore(ctx context.Context, databaseURL, tablePrefix, searchLanguage string, logger *slog.Logger) (*repositories.Store, error) {
	// The language is interpolated into SQL, so it must be a bare identifier
	if !searchLanguagePattern.MatchString(searchLanguage) {
		return nil, fmt.Errorf("invalid search language %q", searchLanguage)
	}

	pool, err := CreateConnectionPool(ctx, databaseURL, logger)
	if err != nil {
		return nil, err
	}

	cfg := &RepositoryConfig{
		Pool:           pool,
		Tables:         NewTableNames(tablePrefix),
		SearchLanguage: searchLanguage,
		Logger:         logger,
	}

	txManager := NewTransactionManager(pool, logger)
	if err := EnsureSchema(ctx, pool, txManager, cfg.Tables, searchLanguage); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("postgres store ready", "table_prefix", tablePrefix, "search_language", searchLanguage)

	return &repositories.Store{
		Users:   NewUserRepository(cfg),
		Folders: NewFolderRepository(cfg),
		Images:  NewImageRepository(cfg),
		Tx:      txManager,
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}
