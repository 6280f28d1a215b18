package handler

import "net/http"

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Workspace *WorkspaceHandler
	View      *ViewHandler
	Section   *SectionHandler
	Import    *ImportHandler
	Database  *DatabaseHandler
	Document  *DocumentHandler
	Events    *EventsHandler
}

// RegisterRoutes mounts every API route on mux
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Workspace routes
	mux.HandleFunc("GET /api/workspace", h.Workspace.GetCurrentWorkspace)
	mux.HandleFunc("GET /api/workspace/setting", h.Workspace.GetWorkspaceSetting)
	mux.HandleFunc("GET /api/workspace/snapshots", h.Workspace.GetSnapshots)
	mux.HandleFunc("POST /api/workspace/reload", h.Workspace.ReloadWorkspace)
	mux.HandleFunc("GET /api/workspaces", h.Workspace.ListWorkspaces)
	mux.HandleFunc("POST /api/workspaces", h.Workspace.CreateWorkspace)
	mux.HandleFunc("POST /api/workspaces/{id}/open", h.Workspace.OpenWorkspace)

	// View routes
	mux.HandleFunc("POST /api/views", h.View.CreateView)
	mux.HandleFunc("POST /api/views/orphans", h.View.CreateOrphanView)
	mux.HandleFunc("GET /api/views/current", h.View.GetCurrentView) // more specific than {id}
	mux.HandleFunc("GET /api/views/{id}", h.View.GetView)
	mux.HandleFunc("PATCH /api/views/{id}", h.View.UpdateView)
	mux.HandleFunc("DELETE /api/views/{id}", h.View.DeleteView)
	mux.HandleFunc("GET /api/views/{id}/relation", h.View.GetViewRelation)
	mux.HandleFunc("PUT /api/views/{id}/icon", h.View.UpdateViewIcon)
	mux.HandleFunc("POST /api/views/{id}/duplicate", h.View.DuplicateView)
	mux.HandleFunc("POST /api/views/{id}/move", h.View.MoveView)
	mux.HandleFunc("POST /api/views/{id}/move-nested", h.View.MoveNestedView)
	mux.HandleFunc("POST /api/views/{id}/current", h.View.SetCurrentView)
	mux.HandleFunc("POST /api/views/{id}/close", h.View.CloseView)
	mux.HandleFunc("POST /api/views/{id}/favorite", h.View.ToggleFavorite)

	// Section routes
	mux.HandleFunc("GET /api/favorites", h.Section.GetFavorites)
	mux.HandleFunc("GET /api/recent", h.Section.GetRecent)
	mux.HandleFunc("POST /api/recent", h.Section.AddRecent)
	mux.HandleFunc("DELETE /api/recent", h.Section.RemoveRecent)
	mux.HandleFunc("GET /api/trash", h.Section.GetTrash)
	mux.HandleFunc("DELETE /api/trash", h.Section.DeleteAllTrash)
	mux.HandleFunc("POST /api/trash/restore", h.Section.RestoreAllTrash)
	mux.HandleFunc("POST /api/trash/{id}/restore", h.Section.RestoreTrash)
	mux.HandleFunc("DELETE /api/trash/{id}", h.Section.DeleteTrash)

	// Import
	mux.HandleFunc("POST /api/import", h.Import.Import)

	// Payload routes
	mux.HandleFunc("GET /api/databases/{id}/fields", h.Database.GetFields)
	mux.HandleFunc("GET /api/databases/{id}/rows", h.Database.GetRows)
	mux.HandleFunc("PUT /api/databases/{id}/cells", h.Database.UpdateCell)
	mux.HandleFunc("GET /api/documents/{id}", h.Document.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", h.Document.UpdateDocument)

	// SSE
	mux.HandleFunc("GET /api/events", h.Events.Stream)
}
