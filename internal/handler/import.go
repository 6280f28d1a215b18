package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"folio/internal/config"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/httputil"
)

// ImportHandler handles file imports into the folder
type ImportHandler struct {
	folder folderSvc.FolderService
	logger *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(folder folderSvc.FolderService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		folder: folder,
		logger: logger,
	}
}

// Import creates a view from an uploaded file.
// POST /api/import (multipart/form-data)
//
// Form fields:
//   - file: required
//   - parent_view_id: optional, defaults to the current workspace
//   - name: optional, defaults to the file name without extension
//   - import_type, view_layout: optional, inferred from the file extension
//
// A .zip file is imported as a tree: a view named after the archive holding
// one view per supported entry, with directories as nested views.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxImportBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, config.MaxImportBytes+1))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if len(data) > config.MaxImportBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}

	parentViewID := r.FormValue("parent_view_id")
	if parentViewID == "" {
		parentViewID = h.folder.WorkspaceID()
	}
	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}

	if folderSvc.IsZipFile(header.Filename) {
		h.importZip(w, r, &folderSvc.ImportZipParams{ParentViewID: parentViewID, Name: name, Data: data})
		return
	}

	params := &folderSvc.ImportParams{
		ParentViewID: parentViewID,
		Name:         name,
		ImportType:   folderSvc.ImportType(r.FormValue("import_type")),
		ViewLayout:   models.ViewLayout(r.FormValue("view_layout")),
		Data:         data,
	}
	if params.ImportType == "" || params.ViewLayout == "" {
		importType, layout, known := folderSvc.ImportTypeForFile(header.Filename)
		if !known {
			httputil.RespondError(w, http.StatusBadRequest, "cannot infer import type from "+header.Filename)
			return
		}
		if params.ImportType == "" {
			params.ImportType = importType
		}
		if params.ViewLayout == "" {
			params.ViewLayout = layout
		}
	}

	h.logger.Info("starting import",
		"file", header.Filename,
		"bytes", len(data),
		"import_type", params.ImportType,
		"view_layout", params.ViewLayout,
	)

	view, err := h.folder.Import(r.Context(), params)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, view)
}

func (h *ImportHandler) importZip(w http.ResponseWriter, r *http.Request, params *folderSvc.ImportZipParams) {
	h.logger.Info("starting zip import", "name", params.Name, "bytes", len(params.Data))

	result, err := h.folder.ImportZip(r.Context(), params)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, result)
}
