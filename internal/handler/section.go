package handler

import (
	"log/slog"
	"net/http"

	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/httputil"
)

// SectionHandler handles favorites, recent views and trash
type SectionHandler struct {
	folder folderSvc.FolderService
	logger *slog.Logger
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(folder folderSvc.FolderService, logger *slog.Logger) *SectionHandler {
	return &SectionHandler{
		folder: folder,
		logger: logger,
	}
}

type viewIDsRequest struct {
	ViewIDs []string `json:"view_ids"`
}

func parseViewIDs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req viewIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if len(req.ViewIDs) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "view_ids is required")
		return nil, false
	}
	return req.ViewIDs, true
}

// GetFavorites returns the visible favorite views
// GET /api/favorites
func (h *SectionHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	views, err := h.folder.GetAllFavorites(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, views)
}

// GetRecent returns the visible recent views, oldest first
// GET /api/recent
func (h *SectionHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	views, err := h.folder.GetAllRecentSections(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, views)
}

// AddRecent records views as recently opened
// POST /api/recent
func (h *SectionHandler) AddRecent(w http.ResponseWriter, r *http.Request) {
	ids, ok := parseViewIDs(w, r)
	if !ok {
		return
	}
	if err := h.folder.AddRecentViews(r.Context(), ids); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// RemoveRecent forgets views from the recent section
// DELETE /api/recent
func (h *SectionHandler) RemoveRecent(w http.ResponseWriter, r *http.Request) {
	ids, ok := parseViewIDs(w, r)
	if !ok {
		return
	}
	if err := h.folder.RemoveRecentViews(r.Context(), ids); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// GetTrash lists the trashed views
// GET /api/trash
func (h *SectionHandler) GetTrash(w http.ResponseWriter, r *http.Request) {
	trash, err := h.folder.GetAllTrash(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, trash)
}

// RestoreAllTrash restores every trashed view
// POST /api/trash/restore
func (h *SectionHandler) RestoreAllTrash(w http.ResponseWriter, r *http.Request) {
	if err := h.folder.RestoreAllTrash(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// RestoreTrash restores one view to its original position
// POST /api/trash/{id}/restore
func (h *SectionHandler) RestoreTrash(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}
	if err := h.folder.RestoreTrash(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// DeleteAllTrash permanently deletes every trashed view
// DELETE /api/trash
func (h *SectionHandler) DeleteAllTrash(w http.ResponseWriter, r *http.Request) {
	if err := h.folder.DeleteAllTrash(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// DeleteTrash permanently deletes one trashed view
// DELETE /api/trash/{id}
func (h *SectionHandler) DeleteTrash(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}
	if err := h.folder.DeleteTrash(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}
