package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
)

var _ repositories.ViewDataStore = (*Store)(nil)

// GetViewData returns the payload of a view
func (s *Store) GetViewData(ctx context.Context, viewID string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM view_data WHERE view_id = ?`, viewID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("view data not found: %s", viewID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view data: %w", err)
	}
	return data, nil
}

// PutViewData creates or replaces the payload of a view
func (s *Store) PutViewData(ctx context.Context, viewID string, layout models.ViewLayout, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO view_data (view_id, layout, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (view_id) DO UPDATE SET layout = excluded.layout, data = excluded.data, updated_at = excluded.updated_at`,
		viewID, string(layout), data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to put view data: %w", err)
	}
	return nil
}

// DeleteViewData removes the payload of a view
func (s *Store) DeleteViewData(ctx context.Context, viewID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM view_data WHERE view_id = ?`, viewID); err != nil {
		return fmt.Errorf("failed to delete view data: %w", err)
	}
	return nil
}

// CountViewData returns the number of stored payloads per layout
func (s *Store) CountViewData(ctx context.Context) (map[models.ViewLayout]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT layout, COUNT(*) FROM view_data GROUP BY layout`)
	if err != nil {
		return nil, fmt.Errorf("failed to count view data: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ViewLayout]int)
	for rows.Next() {
		var (
			layout string
			count  int
		)
		if err := rows.Scan(&layout, &count); err != nil {
			return nil, fmt.Errorf("failed to scan view data count: %w", err)
		}
		counts[models.ViewLayout(layout)] = count
	}
	return counts, rows.Err()
}
