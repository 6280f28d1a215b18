package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FolderCloudRepository is the Postgres-backed synchronization service. It
// stores one doc state per (workspace, object, collab type) plus snapshots.
type FolderCloudRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

var (
	_ folderSvc.FolderCloudService   = (*FolderCloudRepository)(nil)
	_ folderSvc.FolderDocStateWriter = (*FolderCloudRepository)(nil)
)

// NewFolderCloudRepository creates a new cloud repository
func NewFolderCloudRepository(config *RepositoryConfig) *FolderCloudRepository {
	return &FolderCloudRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: NewTransactionManager(config.Pool, config.Logger),
		logger:    config.Logger,
	}
}

// ServiceName identifies the backend in logs
func (r *FolderCloudRepository) ServiceName() string {
	return "postgres"
}

// GetFolderDocState returns the doc state of a workspace owned by uid
func (r *FolderCloudRepository) GetFolderDocState(ctx context.Context, workspaceID string, uid int64, collabType models.CollabType, objectID string) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT s.state
		FROM %s s
		JOIN %s w ON w.id = s.workspace_id
		WHERE s.workspace_id = $1 AND s.object_id = $2 AND s.collab_type = $3 AND w.owner_uid = $4
	`, r.tables.FolderDocStates, r.tables.Workspaces)

	var state []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, workspaceID, objectID, string(collabType), uid).Scan(&state)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("no %s doc state for workspace %s", collabType, workspaceID)}
		}
		return nil, fmt.Errorf("get folder doc state: %w", err)
	}
	return state, nil
}

// CreateWorkspace creates an empty workspace owned by uid
func (r *FolderCloudRepository) CreateWorkspace(ctx context.Context, uid int64, name string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_uid, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Workspaces)

	workspace := &models.Workspace{
		ID:         uuid.NewString(),
		Name:       name,
		ChildViews: []string{},
		CreatedBy:  &uid,
	}
	var createdAt time.Time
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, workspace.ID, uid, name, time.Now()).Scan(&createdAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("workspace '%s' already exists", name),
				ResourceType: "workspace",
				ResourceID:   r.existingWorkspaceID(ctx, uid, name),
			}
		}
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	workspace.CreatedAt = createdAt.Unix()
	return workspace, nil
}

func (r *FolderCloudRepository) existingWorkspaceID(ctx context.Context, uid int64, name string) string {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE owner_uid = $1 AND name = $2`, r.tables.Workspaces)
	var id string
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, uid, name).Scan(&id); err != nil {
		r.logger.Warn("failed to look up existing workspace", "name", name, "error", err)
	}
	return id
}

// EnsureWorkspace creates the workspace row with a fixed id if it is missing
func (r *FolderCloudRepository) EnsureWorkspace(ctx context.Context, workspaceID string, uid int64, name string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_uid, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, r.tables.Workspaces)
	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, workspaceID, uid, name, time.Now()); err != nil {
		return fmt.Errorf("ensure workspace: %w", err)
	}
	return nil
}

// GetFolderSnapshots returns up to limit snapshots, newest first
func (r *FolderCloudRepository) GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, description, state, created_at
		FROM %s
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.FolderSnapshots)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("get folder snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.FolderSnapshot{}
	for rows.Next() {
		var (
			snapshot  models.FolderSnapshot
			createdAt time.Time
		)
		if err := rows.Scan(&snapshot.SnapshotID, &snapshot.Desc, &snapshot.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan folder snapshot: %w", err)
		}
		snapshot.CreatedAt = createdAt.Unix()
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder snapshots: %w", err)
	}
	return snapshots, nil
}

// SaveFolderDocState replaces the folder doc state of a workspace
func (r *FolderCloudRepository) SaveFolderDocState(ctx context.Context, workspaceID string, uid int64, state []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, object_id, collab_type, state, updated_by, updated_at)
		VALUES ($1, $1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, object_id, collab_type)
		DO UPDATE SET state = EXCLUDED.state, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`, r.tables.FolderDocStates)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, workspaceID, string(models.CollabTypeFolder), state, uid, time.Now())
	if err != nil {
		if IsPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("workspace not found: %s", workspaceID)}
		}
		return fmt.Errorf("save folder doc state: %w", err)
	}
	return nil
}

// CreateSnapshot stores a copy of a folder doc state
func (r *FolderCloudRepository) CreateSnapshot(ctx context.Context, workspaceID, desc string, state []byte) (*models.FolderSnapshot, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, workspace_id, description, state, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, r.tables.FolderSnapshots)

	snapshot := &models.FolderSnapshot{SnapshotID: uuid.NewString(), Desc: desc, Data: state}
	var createdAt time.Time
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, snapshot.SnapshotID, workspaceID, desc, state, time.Now()).Scan(&createdAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("workspace not found: %s", workspaceID)}
		}
		return nil, fmt.Errorf("create folder snapshot: %w", err)
	}
	snapshot.CreatedAt = createdAt.Unix()
	return snapshot, nil
}

// SaveWithSnapshot replaces the doc state and records a snapshot of it in one transaction
func (r *FolderCloudRepository) SaveWithSnapshot(ctx context.Context, workspaceID string, uid int64, desc string, state []byte) error {
	return r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := r.SaveFolderDocState(txCtx, workspaceID, uid, state); err != nil {
			return err
		}
		_, err := r.CreateSnapshot(txCtx, workspaceID, desc, state)
		return err
	})
}
