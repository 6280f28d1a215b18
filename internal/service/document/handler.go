package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/document"
	folderModels "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	docSvc "folio/internal/domain/services/document"
	folderSvc "folio/internal/domain/services/folder"
)

// Handler owns the payload of document views and serves their content
type Handler struct {
	store      repositories.ViewDataStore
	converters *Converters
	logger     *slog.Logger
}

var _ docSvc.DocumentService = (*Handler)(nil)
var _ folderSvc.FolderOperationHandler = (*Handler)(nil)

// NewHandler creates a document view handler
func NewHandler(store repositories.ViewDataStore, converters *Converters, logger *slog.Logger) *Handler {
	return &Handler{store: store, converters: converters, logger: logger}
}

func (h *Handler) put(ctx context.Context, doc *models.Document) error {
	doc.WordCount = countWords(doc.Content)
	doc.UpdatedAt = time.Now().Unix()
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return h.store.PutViewData(ctx, doc.ViewID, folderModels.LayoutDocument, raw)
}

// GetDocument returns the document payload of a view
func (h *Handler) GetDocument(ctx context.Context, viewID string) (*models.Document, error) {
	raw, err := h.store.GetViewData(ctx, viewID)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// UpdateContent replaces the markdown body of a document
func (h *Handler) UpdateContent(ctx context.Context, viewID, content string) (*models.Document, error) {
	doc, err := h.GetDocument(ctx, viewID)
	if err != nil {
		return nil, err
	}
	doc.Content = content
	if err := h.put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateBuiltInView creates an empty document
func (h *Handler) CreateBuiltInView(ctx context.Context, uid int64, viewID, name string, layout folderModels.ViewLayout) error {
	return h.put(ctx, &models.Document{ViewID: viewID, Name: name})
}

// CreateViewWithViewData creates a document whose body is the markdown in data
func (h *Handler) CreateViewWithViewData(ctx context.Context, uid int64, viewID, name string, data []byte, layout folderModels.ViewLayout, meta map[string]string) error {
	return h.put(ctx, &models.Document{ViewID: viewID, Name: name, Content: string(data)})
}

// DuplicateView returns the markdown body of the document
func (h *Handler) DuplicateView(ctx context.Context, viewID string) ([]byte, error) {
	doc, err := h.GetDocument(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return []byte(doc.Content), nil
}

// ImportFromBytes converts plain text, markdown or HTML into a document
func (h *Handler) ImportFromBytes(ctx context.Context, uid int64, viewID, name string, importType folderSvc.ImportType, data []byte) error {
	content, err := h.converters.Convert(ctx, importType, data)
	if err != nil {
		return err
	}
	h.logger.Info("document imported", "view_id", viewID, "import_type", importType, "bytes", len(data))
	return h.put(ctx, &models.Document{ViewID: viewID, Name: name, Content: content})
}

// ImportFromFilePath imports a file, picking the converter by extension
func (h *Handler) ImportFromFilePath(ctx context.Context, viewID, name, path string) error {
	importType, ok := h.converters.ImportTypeForFile(path)
	if !ok {
		return &domain.ValidationError{Message: fmt.Sprintf("unsupported document file: %s", filepath.Base(path))}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return h.ImportFromBytes(ctx, 0, viewID, name, importType, data)
}

// DeleteView removes the document payload
func (h *Handler) DeleteView(ctx context.Context, viewID string) error {
	return h.store.DeleteViewData(ctx, viewID)
}

// CloseView has nothing to release; documents are read on demand
func (h *Handler) CloseView(ctx context.Context, viewID string) error {
	return nil
}

// DidUpdateView keeps the stored document name in sync with the view
func (h *Handler) DidUpdateView(ctx context.Context, oldView, newView *folderModels.View) error {
	if oldView.Name == newView.Name {
		return nil
	}
	doc, err := h.GetDocument(ctx, newView.ID)
	if err != nil {
		return err
	}
	doc.Name = newView.Name
	return h.put(ctx, doc)
}
