package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the cloud tables if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Workspaces + ` (
			id TEXT PRIMARY KEY,
			owner_uid BIGINT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(owner_uid, name)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FolderDocStates + ` (
			workspace_id TEXT NOT NULL REFERENCES ` + tables.Workspaces + `(id) ON DELETE CASCADE,
			object_id TEXT NOT NULL,
			collab_type TEXT NOT NULL,
			state BYTEA NOT NULL,
			updated_by BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, object_id, collab_type)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FolderSnapshots + ` (
			id TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL REFERENCES ` + tables.Workspaces + `(id) ON DELETE CASCADE,
			description TEXT NOT NULL DEFAULT '',
			state BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folder_snapshots_workspace ON ` + tables.FolderSnapshots + `(workspace_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the cloud tables, children first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}
