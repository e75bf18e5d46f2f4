package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"imagefolders/internal/domain/repositories"
)

// rootParent stands in for NULL parents in the sibling uniqueness index
const rootParent = "00000000-0000-0000-0000-000000000000"

// schemaStatements returns the idempotent DDL for the given tables
func schemaStatements(t *TableNames, language string) []string {
	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Users),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s_email_key ON %s (email)`, t.Users, t.Users),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
			parent_id  UUID REFERENCES %s (id) ON DELETE RESTRICT,
			name       TEXT NOT NULL,
			path       TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Folders, t.Users, t.Folders),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s_sibling_name_key ON %s (user_id, COALESCE(parent_id, '%s'::uuid), name)`,
			t.Folders, t.Folders, rootParent),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_created_idx ON %s (user_id, created_at DESC)`, t.Folders, t.Folders),

		// folder_id has no foreign key; images outlive their folder
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
			folder_id  UUID,
			name       TEXT NOT NULL,
			image_url  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Images, t.Users),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_created_idx ON %s (user_id, created_at DESC)`, t.Images, t.Images),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_name_search_idx ON %s USING GIN (to_tsvector('%s', name))`,
			t.Images, t.Images, language),
	}
}

// EnsureSchema creates missing tables and indexes in one transaction. The
// name search index is built for language and must match the configuration
// queries use.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, txManager repositories.TransactionManager, tables *TableNames, language string) error {
	return txManager.ExecTx(ctx, func(ctx context.Context) error {
		for _, stmt := range schemaStatements(tables, language) {
			if _, err := executor(ctx, pool).Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}

// DropSchema removes the tables of one prefix, data included
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %s, %s, %s CASCADE`, tables.Images, tables.Folders, tables.Users)
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
