package handler

import (
	"log/slog"
	"net/http"

	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/httputil"
)

const defaultSnapshotLimit = 20

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	folder folderSvc.FolderService
	logger *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(folder folderSvc.FolderService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		folder: folder,
		logger: logger,
	}
}

// GetCurrentWorkspace returns the current workspace with its visible views
// GET /api/workspace
func (h *WorkspaceHandler) GetCurrentWorkspace(w http.ResponseWriter, r *http.Request) {
	workspace, err := h.folder.GetCurrentWorkspace(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, workspace)
}

// ListWorkspaces returns the workspaces of this session
// GET /api/workspaces
func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.folder.GetAllWorkspaces(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, workspaces)
}

// CreateWorkspace creates a workspace
// POST /api/workspaces
func (h *WorkspaceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var params folderSvc.CreateWorkspaceParams
	if err := httputil.ParseJSON(w, r, &params); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	workspace, err := h.folder.CreateWorkspace(r.Context(), &params)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, workspace)
}

// OpenWorkspace makes a workspace current
// POST /api/workspaces/{id}/open
func (h *WorkspaceHandler) OpenWorkspace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Workspace")
	if !ok {
		return
	}

	workspace, err := h.folder.OpenWorkspace(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	h.logger.Info("workspace opened", "workspace_id", id)
	httputil.RespondJSON(w, http.StatusOK, workspace)
}

// ReloadWorkspace re-reads the current workspace from the cloud
// POST /api/workspace/reload
func (h *WorkspaceHandler) ReloadWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := h.folder.ReloadWorkspace(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// GetWorkspaceSetting returns the current workspace id and latest view
// GET /api/workspace/setting
func (h *WorkspaceHandler) GetWorkspaceSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.folder.GetWorkspaceSetting(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, setting)
}

// GetSnapshots returns the newest snapshots of the current workspace folder
// GET /api/workspace/snapshots?limit=N
func (h *WorkspaceHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	workspaceID := h.folder.WorkspaceID()
	if workspaceID == "" {
		httputil.RespondError(w, http.StatusServiceUnavailable, "folder is not initialized")
		return
	}

	limit := httputil.QueryInt(r, "limit", defaultSnapshotLimit)
	snapshots, err := h.folder.GetFolderSnapshots(r.Context(), workspaceID, limit)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, snapshots)
}
