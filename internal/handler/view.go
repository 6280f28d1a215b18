package handler

import (
	"log/slog"
	"net/http"

	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/httputil"
)

// ViewHandler handles view HTTP requests
type ViewHandler struct {
	folder folderSvc.FolderService
	logger *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(folder folderSvc.FolderService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		folder: folder,
		logger: logger,
	}
}

// CreateView creates a view under a parent (the workspace when empty)
// POST /api/views
func (h *ViewHandler) CreateView(w http.ResponseWriter, r *http.Request) {
	var params folderSvc.CreateViewParams
	if err := httputil.ParseJSON(w, r, &params); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.folder.CreateView(r.Context(), &params)
	if err != nil {
		handleError(w, err)
		return
	}
	h.folder.NotifyParentViewChanged(r.Context(), view.ParentViewID)
	httputil.RespondJSON(w, http.StatusCreated, view)
}

// CreateOrphanView creates a view that is not attached to any parent
// POST /api/views/orphans
func (h *ViewHandler) CreateOrphanView(w http.ResponseWriter, r *http.Request) {
	var params folderSvc.CreateOrphanViewParams
	if err := httputil.ParseJSON(w, r, &params); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.folder.CreateOrphanView(r.Context(), &params)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, view)
}

// GetView returns a view with its visible children
// GET /api/views/{id}
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	view, err := h.folder.GetView(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetViewRelation returns the parent and ordered siblings of a view
// GET /api/views/{id}/relation
func (h *ViewHandler) GetViewRelation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	relation, err := h.folder.GetViewRelation(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, relation)
}

type updateViewRequest struct {
	Name       httputil.OptionalString `json:"name"`
	Desc       httputil.OptionalString `json:"desc"`
	Layout     *models.ViewLayout      `json:"layout"`
	IsFavorite *bool                   `json:"is_favorite"`
}

// UpdateView patches a view. Absent fields are left alone; a null desc clears it.
// PATCH /api/views/{id}
func (h *ViewHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var req updateViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.folder.UpdateViewWithParams(r.Context(), &folderSvc.UpdateViewParams{
		ViewID:     id,
		Name:       req.Name.Patch(),
		Desc:       req.Desc.Patch(),
		Layout:     req.Layout,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}

// UpdateViewIcon sets or clears (null icon) the icon of a view
// PUT /api/views/{id}/icon
func (h *ViewHandler) UpdateViewIcon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var params folderSvc.UpdateViewIconParams
	if err := httputil.ParseJSON(w, r, &params); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.ViewID = id

	view, err := h.folder.UpdateViewIconWithParams(r.Context(), &params)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}

// DeleteView moves a view to the trash
// DELETE /api/views/{id}
func (h *ViewHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	if err := h.folder.MoveViewToTrash(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// DuplicateView copies a view next to the original
// POST /api/views/{id}/duplicate
func (h *ViewHandler) DuplicateView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	view, err := h.folder.DuplicateView(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, view)
}

type moveViewRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveView reorders a view among its visible siblings
// POST /api/views/{id}/move
func (h *ViewHandler) MoveView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var req moveViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.folder.MoveView(r.Context(), id, req.From, req.To); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

type moveNestedViewRequest struct {
	NewParentID string  `json:"new_parent_id"`
	PrevViewID  *string `json:"prev_view_id"`
}

// MoveNestedView re-parents a view, placing it after prev_view_id (first when null)
// POST /api/views/{id}/move-nested
func (h *ViewHandler) MoveNestedView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var req moveNestedViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.NewParentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "new_parent_id is required")
		return
	}

	if err := h.folder.MoveNestedView(r.Context(), id, req.NewParentID, req.PrevViewID); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// SetCurrentView opens a view
// POST /api/views/{id}/current
func (h *ViewHandler) SetCurrentView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	if err := h.folder.SetCurrentView(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// GetCurrentView returns the open view
// GET /api/views/current
func (h *ViewHandler) GetCurrentView(w http.ResponseWriter, r *http.Request) {
	view, err := h.folder.GetCurrentView(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}

// CloseView releases the resources a layout handler holds for a view
// POST /api/views/{id}/close
func (h *ViewHandler) CloseView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	if err := h.folder.CloseView(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// ToggleFavorite flips the favorite flag of a view
// POST /api/views/{id}/favorite
func (h *ViewHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	view, err := h.folder.ToggleFavorites(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}
