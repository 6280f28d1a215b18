package database

import (
	"context"
	"testing"

	"folio/internal/domain"
	models "folio/internal/domain/models/database"
	folderModels "folio/internal/domain/models/folder"
	dbSvc "folio/internal/domain/services/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTasks stores a database with rows a (checked), b (unchecked), c (no cell), d (checked)
func seedTasks(t *testing.T, store *memViewDataStore) {
	t.Helper()
	checkbox := func(v string) models.Cell { return models.Cell{Data: v, FieldType: models.FieldTypeCheckbox} }
	text := func(v string) models.Cell { return models.Cell{Data: v, FieldType: models.FieldTypeRichText} }

	database := &models.DatabaseData{
		ViewID: "tasks",
		Layout: folderModels.LayoutGrid,
		Fields: []models.Field{
			{ID: "name", Name: "Name", FieldType: models.FieldTypeRichText, IsPrimary: true},
			{ID: "done", Name: "Done", FieldType: models.FieldTypeCheckbox},
		},
		Rows: []models.Row{
			{ID: "a", Cells: map[string]models.Cell{"name": text("a"), "done": checkbox("Yes")}},
			{ID: "b", Cells: map[string]models.Cell{"name": text("b"), "done": checkbox("No")}},
			{ID: "c", Cells: map[string]models.Cell{"name": text("c")}},
			{ID: "d", Cells: map[string]models.Cell{"name": text("d"), "done": checkbox("Yes")}},
		},
	}
	raw, err := encodeDatabase(database)
	require.NoError(t, err)
	require.NoError(t, store.PutViewData(context.Background(), "tasks", folderModels.LayoutGrid, raw))
}

func rowIDs(rows []models.Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestDatabaseService_GetRows(t *testing.T) {
	ctx := context.Background()
	store := newMemViewDataStore()
	seedTasks(t, store)
	svc := NewDatabaseService(store, testLogger())

	tests := []struct {
		name  string
		query *models.RowQuery
		want  []string
	}{
		{name: "no query", query: nil, want: []string{"a", "b", "c", "d"}},
		{
			name:  "checked filter",
			query: &models.RowQuery{Filter: &models.CheckboxFilter{FieldID: "done", Condition: models.CheckboxIsChecked}},
			want:  []string{"a", "d"},
		},
		{
			name:  "unchecked filter includes missing cells",
			query: &models.RowQuery{Filter: &models.CheckboxFilter{FieldID: "done", Condition: models.CheckboxIsUnchecked}},
			want:  []string{"b", "c"},
		},
		{
			name:  "filter on a text field keeps everything",
			query: &models.RowQuery{Filter: &models.CheckboxFilter{FieldID: "name", Condition: models.CheckboxIsChecked}},
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "ascending sort puts unchecked first",
			query: &models.RowQuery{SortFieldID: "done", Sort: models.SortAscending},
			want:  []string{"b", "c", "a", "d"},
		},
		{
			name:  "descending sort puts checked first",
			query: &models.RowQuery{SortFieldID: "done", Sort: models.SortDescending},
			want:  []string{"a", "d", "b", "c"},
		},
		{
			name:  "text sort",
			query: &models.RowQuery{SortFieldID: "name", Sort: models.SortDescending},
			want:  []string{"d", "c", "b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.GetRows(ctx, "tasks", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rowIDs(rows))
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := svc.GetRows(ctx, "tasks", &models.RowQuery{SortFieldID: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := svc.GetRows(ctx, "missing", nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDatabaseService_UpdateCell(t *testing.T) {
	ctx := context.Background()
	store := newMemViewDataStore()
	seedTasks(t, store)
	svc := NewDatabaseService(store, testLogger())

	cell, err := svc.UpdateCell(ctx, &dbSvc.UpdateCellParams{ViewID: "tasks", RowID: "c", FieldID: "done", Changeset: "true"})
	require.NoError(t, err)
	assert.Equal(t, "Yes", cell.Data)
	assert.Equal(t, models.FieldTypeCheckbox, cell.FieldType)

	rows, err := svc.GetRows(ctx, "tasks", &models.RowQuery{
		Filter: &models.CheckboxFilter{FieldID: "done", Condition: models.CheckboxIsChecked},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, rowIDs(rows))

	cell, err = svc.UpdateCell(ctx, &dbSvc.UpdateCellParams{ViewID: "tasks", RowID: "a", FieldID: "name", Changeset: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", cell.Data)

	_, err = svc.UpdateCell(ctx, &dbSvc.UpdateCellParams{ViewID: "tasks", RowID: "zzz", FieldID: "done", Changeset: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateCell(ctx, &dbSvc.UpdateCellParams{ViewID: "tasks", FieldID: "done"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
