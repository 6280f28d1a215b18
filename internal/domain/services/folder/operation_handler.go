package folder

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// ImportType names the encoding of imported bytes
type ImportType string

const (
	ImportTypePlainText ImportType = "plain_text"
	ImportTypeMarkdown  ImportType = "markdown"
	ImportTypeHTML      ImportType = "html"
	ImportTypeCSV       ImportType = "csv"
	ImportTypeXLSX      ImportType = "xlsx"
)

// FolderOperationHandler creates, imports, duplicates and deletes the payload of
// views of one or more layouts. The folder tree only tracks view metadata; the
// payload belongs to the handler.
type FolderOperationHandler interface {
	// CreateBuiltInView creates the default payload for a new view
	CreateBuiltInView(ctx context.Context, uid int64, viewID, name string, layout models.ViewLayout) error

	// CreateViewWithViewData creates a view payload from initial data
	CreateViewWithViewData(ctx context.Context, uid int64, viewID, name string, data []byte, layout models.ViewLayout, meta map[string]string) error

	// DuplicateView returns a copy of the view payload suitable for CreateViewWithViewData
	DuplicateView(ctx context.Context, viewID string) ([]byte, error)

	// ImportFromBytes creates a view payload from imported bytes
	ImportFromBytes(ctx context.Context, uid int64, viewID, name string, importType ImportType, data []byte) error

	// ImportFromFilePath creates a view payload from a file on disk
	ImportFromFilePath(ctx context.Context, viewID, name, path string) error

	// DeleteView releases every resource held by the view payload
	DeleteView(ctx context.Context, viewID string) error

	// CloseView releases in-memory resources of an open view
	CloseView(ctx context.Context, viewID string) error

	// DidUpdateView is called after the view metadata changed
	DidUpdateView(ctx context.Context, oldView, newView *models.View) error
}
