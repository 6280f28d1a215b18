package document

import (
	"context"

	models "folio/internal/domain/models/document"
)

// DocumentService reads and edits the body of document views
type DocumentService interface {
	// GetDocument returns the document payload of a view
	GetDocument(ctx context.Context, viewID string) (*models.Document, error)

	// UpdateContent replaces the markdown body of a document
	UpdateContent(ctx context.Context, viewID, content string) (*models.Document, error)
}
