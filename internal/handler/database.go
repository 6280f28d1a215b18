package handler

import (
	"log/slog"
	"net/http"

	models "folio/internal/domain/models/database"
	dbSvc "folio/internal/domain/services/database"
	"folio/internal/httputil"
)

// DatabaseHandler handles rows and cells of database views
type DatabaseHandler struct {
	databaseService dbSvc.DatabaseService
	logger          *slog.Logger
}

// NewDatabaseHandler creates a new database handler
func NewDatabaseHandler(databaseService dbSvc.DatabaseService, logger *slog.Logger) *DatabaseHandler {
	return &DatabaseHandler{
		databaseService: databaseService,
		logger:          logger,
	}
}

// GetFields returns the columns of a database view
// GET /api/databases/{id}/fields
func (h *DatabaseHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	fields, err := h.databaseService.GetFields(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, fields)
}

// GetRows returns the rows of a database view.
// GET /api/databases/{id}/rows
//
// Query parameters:
//   - filter_field, filter: checkbox filter (checked|unchecked)
//   - sort_field, sort: sort by a field (asc|desc, default asc)
func (h *DatabaseHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	query, err := parseRowQuery(r)
	if err != nil {
		handleError(w, err)
		return
	}

	rows, err := h.databaseService.GetRows(r.Context(), id, query)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, rows)
}

func parseRowQuery(r *http.Request) (*models.RowQuery, error) {
	q := r.URL.Query()
	query := &models.RowQuery{
		SortFieldID: q.Get("sort_field"),
		Sort:        models.SortCondition(q.Get("sort")),
	}

	switch query.Sort {
	case "", models.SortAscending, models.SortDescending:
	default:
		return nil, validationError("sort must be asc or desc")
	}

	if field := q.Get("filter_field"); field != "" {
		condition := models.CheckboxFilterCondition(q.Get("filter"))
		if condition != models.CheckboxIsChecked && condition != models.CheckboxIsUnchecked {
			return nil, validationError("filter must be checked or unchecked")
		}
		query.Filter = &models.CheckboxFilter{FieldID: field, Condition: condition}
	}

	if query.Filter == nil && query.SortFieldID == "" {
		return nil, nil
	}
	return query, nil
}

type updateCellRequest struct {
	RowID     string `json:"row_id"`
	FieldID   string `json:"field_id"`
	Changeset string `json:"changeset"`
}

// UpdateCell applies a changeset to a cell
// PUT /api/databases/{id}/cells
func (h *DatabaseHandler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "View")
	if !ok {
		return
	}

	var req updateCellRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cell, err := h.databaseService.UpdateCell(r.Context(), &dbSvc.UpdateCellParams{
		ViewID:    id,
		RowID:     req.RowID,
		FieldID:   req.FieldID,
		Changeset: req.Changeset,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, cell)
}
