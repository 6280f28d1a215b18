package database

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/database"
	folderModels "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/service/database/typeoption"

	"github.com/google/uuid"
)

const builtInRowCount = 3

// Handler owns the payload of grid, board and calendar views
type Handler struct {
	store  repositories.ViewDataStore
	logger *slog.Logger
}

// NewHandler creates a database view handler
func NewHandler(store repositories.ViewDataStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Layouts lists the view layouts served by this handler
func (h *Handler) Layouts() []folderModels.ViewLayout {
	return []folderModels.ViewLayout{
		folderModels.LayoutGrid,
		folderModels.LayoutBoard,
		folderModels.LayoutCalendar,
	}
}

func (h *Handler) put(ctx context.Context, viewID string, layout folderModels.ViewLayout, data *models.DatabaseData) error {
	data.ViewID = viewID
	data.Layout = layout
	raw, err := encodeDatabase(data)
	if err != nil {
		return err
	}
	return h.store.PutViewData(ctx, viewID, layout, raw)
}

func (h *Handler) load(ctx context.Context, viewID string) (*models.DatabaseData, error) {
	raw, err := h.store.GetViewData(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return decodeDatabase(raw)
}

// CreateBuiltInView creates a database with a Name and a Done column and three empty rows
func (h *Handler) CreateBuiltInView(ctx context.Context, uid int64, viewID, name string, layout folderModels.ViewLayout) error {
	fields := []models.Field{
		{ID: uuid.NewString(), Name: "Name", FieldType: models.FieldTypeRichText, IsPrimary: true},
		{ID: uuid.NewString(), Name: "Done", FieldType: models.FieldTypeCheckbox, TypeOption: typeoption.CheckboxTypeOption{}.Data()},
	}

	now := time.Now().Unix()
	rows := make([]models.Row, 0, builtInRowCount)
	for i := 0; i < builtInRowCount; i++ {
		rows = append(rows, models.Row{ID: uuid.NewString(), Cells: map[string]models.Cell{}, CreatedAt: now})
	}

	h.logger.Debug("creating built-in database", "view_id", viewID, "layout", layout)
	return h.put(ctx, viewID, layout, &models.DatabaseData{Fields: fields, Rows: rows})
}

// CreateViewWithViewData stores an encoded database as the payload of viewID
func (h *Handler) CreateViewWithViewData(ctx context.Context, uid int64, viewID, name string, data []byte, layout folderModels.ViewLayout, meta map[string]string) error {
	if len(data) == 0 {
		return h.CreateBuiltInView(ctx, uid, viewID, name, layout)
	}
	database, err := decodeDatabase(data)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return h.put(ctx, viewID, layout, database)
}

// DuplicateView returns a copy of the database with fresh row ids
func (h *Handler) DuplicateView(ctx context.Context, viewID string) ([]byte, error) {
	database, err := h.load(ctx, viewID)
	if err != nil {
		return nil, err
	}
	for i := range database.Rows {
		database.Rows[i].ID = uuid.NewString()
	}
	database.ViewID = ""
	return encodeDatabase(database)
}

// ImportFromBytes creates a database from CSV or .xlsx bytes
func (h *Handler) ImportFromBytes(ctx context.Context, uid int64, viewID, name string, importType folderSvc.ImportType, data []byte) error {
	var (
		records [][]string
		err     error
	)
	switch importType {
	case folderSvc.ImportTypeCSV:
		records, err = readCSV(bytes.NewReader(data))
	case folderSvc.ImportTypeXLSX:
		records, err = readXLSXBytes(data)
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("cannot import %s into a database", importType)}
	}
	if err != nil {
		return err
	}
	return h.importRecords(ctx, viewID, records)
}

// ImportFromFilePath creates a database from a .csv or .xlsx file
func (h *Handler) ImportFromFilePath(ctx context.Context, viewID, name, path string) error {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", path, openErr)
		}
		defer f.Close()
		records, err = readCSV(f)
	case ".xlsx":
		records, err = readXLSXFile(path)
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("unsupported database file: %s", filepath.Base(path))}
	}
	if err != nil {
		return err
	}
	return h.importRecords(ctx, viewID, records)
}

func (h *Handler) importRecords(ctx context.Context, viewID string, records [][]string) error {
	database, err := buildDatabase(records)
	if err != nil {
		return err
	}
	h.logger.Info("database imported", "view_id", viewID, "fields", len(database.Fields), "rows", len(database.Rows))
	return h.put(ctx, viewID, folderModels.LayoutGrid, database)
}

// DeleteView removes the database payload
func (h *Handler) DeleteView(ctx context.Context, viewID string) error {
	return h.store.DeleteViewData(ctx, viewID)
}

// CloseView has nothing to release; databases are not cached
func (h *Handler) CloseView(ctx context.Context, viewID string) error {
	h.logger.Debug("database closed", "view_id", viewID)
	return nil
}

// DidUpdateView records layout switches between grid, board and calendar
func (h *Handler) DidUpdateView(ctx context.Context, oldView, newView *folderModels.View) error {
	if oldView.Layout == newView.Layout || !newView.Layout.IsDatabase() {
		return nil
	}
	database, err := h.load(ctx, newView.ID)
	if err != nil {
		return err
	}
	return h.put(ctx, newView.ID, newView.Layout, database)
}
