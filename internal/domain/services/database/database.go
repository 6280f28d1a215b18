package database

import (
	"context"

	models "folio/internal/domain/models/database"
)

// DatabaseService reads and edits the rows of database views
type DatabaseService interface {
	// GetRows returns the rows of a database view, filtered and sorted by query
	GetRows(ctx context.Context, viewID string, query *models.RowQuery) ([]models.Row, error)

	// GetFields returns the fields of a database view in column order
	GetFields(ctx context.Context, viewID string) ([]models.Field, error)

	// UpdateCell applies a changeset to one cell and returns the stored cell
	UpdateCell(ctx context.Context, params *UpdateCellParams) (*models.Cell, error)
}

// UpdateCellParams identifies a cell and the changeset to apply to it
type UpdateCellParams struct {
	ViewID    string `json:"view_id"`
	RowID     string `json:"row_id"`
	FieldID   string `json:"field_id"`
	Changeset string `json:"changeset"`
}
