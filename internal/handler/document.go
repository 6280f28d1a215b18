package handler

import (
	"log/slog"
	"net/http"

	docSvc "folio/internal/domain/services/document"
	"folio/internal/httputil"
)

// DocumentHandler handles the markdown body of document views
type DocumentHandler struct {
	documentService docSvc.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService docSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// GetDocument returns the document of a view
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

type updateDocumentRequest struct {
	Content string `json:"content"`
}

// UpdateDocument replaces the markdown body of a document
// PUT /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.UpdateContent(r.Context(), id, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}
	h.logger.Debug("document updated", "view_id", id, "word_count", doc.WordCount)
	httputil.RespondJSON(w, http.StatusOK, doc)
}
