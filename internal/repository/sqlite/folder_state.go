package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"folio/internal/domain"
	"folio/internal/domain/repositories"
)

var _ repositories.FolderStateStore = (*Store)(nil)

// LoadFolderState returns the stored doc state of a workspace folder
func (s *Store) LoadFolderState(ctx context.Context, uid int64, workspaceID string) ([]byte, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM folder_states WHERE uid = ? AND workspace_id = ?`,
		uid, workspaceID,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("no local folder for workspace %s", workspaceID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load folder state: %w", err)
	}
	return state, nil
}

// SaveFolderState replaces the stored doc state of a workspace folder
func (s *Store) SaveFolderState(ctx context.Context, uid int64, workspaceID string, state []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folder_states (uid, workspace_id, state, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (uid, workspace_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		uid, workspaceID, state, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save folder state: %w", err)
	}
	return nil
}
