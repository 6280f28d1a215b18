package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"folio/internal/domain"
	models "folio/internal/domain/models/database"
	"folio/internal/domain/repositories"
	dbSvc "folio/internal/domain/services/database"
	"folio/internal/service/database/typeoption"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type databaseService struct {
	// serializes read-modify-write cycles on payloads
	mu     sync.Mutex
	store  repositories.ViewDataStore
	logger *slog.Logger
}

// NewDatabaseService creates the row/cell service for database views
func NewDatabaseService(store repositories.ViewDataStore, logger *slog.Logger) dbSvc.DatabaseService {
	return &databaseService{store: store, logger: logger}
}

func (s *databaseService) load(ctx context.Context, viewID string) (*models.DatabaseData, error) {
	raw, err := s.store.GetViewData(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return decodeDatabase(raw)
}

// GetFields returns the columns of a database view
func (s *databaseService) GetFields(ctx context.Context, viewID string) ([]models.Field, error) {
	database, err := s.load(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return database.Fields, nil
}

// GetRows returns the rows that pass the query filter, stably sorted by the
// query sort field
func (s *databaseService) GetRows(ctx context.Context, viewID string, query *models.RowQuery) ([]models.Row, error) {
	database, err := s.load(ctx, viewID)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return database.Rows, nil
	}

	rows := database.Rows
	if query.Filter != nil {
		field, ok := database.Field(query.Filter.FieldID)
		if !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("field not found: %s", query.Filter.FieldID)}
		}
		rows = filterRows(rows, field, *query.Filter)
	}

	if query.SortFieldID != "" {
		field, ok := database.Field(query.SortFieldID)
		if !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("field not found: %s", query.SortFieldID)}
		}
		sortRows(rows, field, query.Sort)
	}
	return rows, nil
}

func filterRows(rows []models.Row, field *models.Field, filter models.CheckboxFilter) []models.Row {
	opt := typeoption.NewCheckboxTypeOption(field.TypeOption)
	visible := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		cell, _ := row.Cell(field.ID)
		data := opt.DecodeCell(cell, cell.FieldType)
		if opt.ApplyFilter(filter, field.FieldType, data) {
			visible = append(visible, row)
		}
	}
	return visible
}

func sortRows(rows []models.Row, field *models.Field, condition models.SortCondition) {
	if condition == "" {
		condition = models.SortAscending
	}

	if !field.FieldType.IsCheckbox() {
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := rows[i].Cell(field.ID)
			b, _ := rows[j].Cell(field.ID)
			return condition.EvaluateOrder(compareText(a.Data, b.Data, field.FieldType)) < 0
		})
		return
	}

	opt := typeoption.NewCheckboxTypeOption(field.TypeOption)
	decode := func(row models.Row) *typeoption.CheckboxCellData {
		cell, ok := row.Cell(field.ID)
		if !ok {
			return nil
		}
		data := opt.DecodeCell(cell, cell.FieldType)
		return &data
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := decode(rows[i]), decode(rows[j])
		if a == nil || b == nil {
			return opt.ApplyCmpWithUninitialized(a, b, condition) < 0
		}
		return opt.ApplyCmp(*a, *b, condition) < 0
	})
}

func compareText(a, b string, fieldType models.FieldType) int {
	if fieldType == models.FieldTypeNumber {
		x, errA := strconv.ParseFloat(a, 64)
		y, errB := strconv.ParseFloat(b, 64)
		if errA == nil && errB == nil {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a, b)
}

// UpdateCell applies a changeset to a cell and stores the database
func (s *databaseService) UpdateCell(ctx context.Context, params *dbSvc.UpdateCellParams) (*models.Cell, error) {
	if err := s.validateUpdateCellParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	database, err := s.load(ctx, params.ViewID)
	if err != nil {
		return nil, err
	}
	field, ok := database.Field(params.FieldID)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("field not found: %s", params.FieldID)}
	}

	var row *models.Row
	for i := range database.Rows {
		if database.Rows[i].ID == params.RowID {
			row = &database.Rows[i]
			break
		}
	}
	if row == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("row not found: %s", params.RowID)}
	}

	var cell models.Cell
	if field.FieldType.IsCheckbox() {
		var previous *models.Cell
		if existing, ok := row.Cell(field.ID); ok {
			previous = &existing
		}
		cell, _ = typeoption.NewCheckboxTypeOption(field.TypeOption).ApplyChangeset(params.Changeset, previous)
	} else {
		cell = models.Cell{Data: params.Changeset, FieldType: field.FieldType}
	}

	if row.Cells == nil {
		row.Cells = make(map[string]models.Cell)
	}
	row.Cells[field.ID] = cell

	raw, err := encodeDatabase(database)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutViewData(ctx, params.ViewID, database.Layout, raw); err != nil {
		return nil, err
	}

	s.logger.Debug("cell updated", "view_id", params.ViewID, "row_id", params.RowID, "field_id", params.FieldID)
	return &cell, nil
}

func (s *databaseService) validateUpdateCellParams(params *dbSvc.UpdateCellParams) error {
	return validation.ValidateStruct(params,
		validation.Field(&params.ViewID, validation.Required),
		validation.Field(&params.RowID, validation.Required),
		validation.Field(&params.FieldID, validation.Required),
	)
}
