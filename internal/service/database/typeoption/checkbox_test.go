package typeoption

import (
	"testing"

	models "folio/internal/domain/models/database"

	"github.com/stretchr/testify/assert"
)

func TestParseCheckbox(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Yes", true},
		{"yes", true},
		{"TRUE", true},
		{"1", true},
		{" true ", true},
		{"No", false},
		{"0", false},
		{"false", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCheckbox(tt.input).IsChecked())
		})
	}
}

func TestCheckboxTypeOption_Data(t *testing.T) {
	opt := NewCheckboxTypeOption(CheckboxTypeOption{IsSelected: true}.Data())
	assert.True(t, opt.IsSelected)

	assert.False(t, NewCheckboxTypeOption(models.TypeOptionData{}).IsSelected)
	assert.False(t, NewCheckboxTypeOption(nil).IsSelected)
}

func TestCheckboxTypeOption_Cells(t *testing.T) {
	opt := CheckboxTypeOption{}
	checked := models.Cell{Data: "Yes", FieldType: models.FieldTypeCheckbox}
	unchecked := models.Cell{Data: "No", FieldType: models.FieldTypeCheckbox}

	assert.Equal(t, "Yes", opt.StringifyCell(checked))
	assert.Equal(t, "No", opt.StringifyCellData(false))
	assert.Equal(t, 1.0, opt.NumericCell(checked))
	assert.Equal(t, 0.0, opt.NumericCell(unchecked))

	t.Run("decode ignores other field types", func(t *testing.T) {
		assert.True(t, opt.DecodeCell(checked, models.FieldTypeCheckbox).IsChecked())
		assert.False(t, opt.DecodeCell(checked, models.FieldTypeRichText).IsChecked())
	})

	t.Run("changeset", func(t *testing.T) {
		cell, data := opt.ApplyChangeset("true", &unchecked)
		assert.True(t, data.IsChecked())
		assert.Equal(t, models.Cell{Data: "Yes", FieldType: models.FieldTypeCheckbox}, cell)

		cell, data = opt.ApplyChangeset("nope", nil)
		assert.False(t, data.IsChecked())
		assert.Equal(t, "No", cell.Data)
	})

	t.Run("transform text cells only", func(t *testing.T) {
		data, ok := opt.TransformTypeOptionCell(models.Cell{Data: "yes"}, models.FieldTypeRichText)
		assert.True(t, ok)
		assert.True(t, data.IsChecked())

		_, ok = opt.TransformTypeOptionCell(models.Cell{Data: "1"}, models.FieldTypeNumber)
		assert.False(t, ok)
	})
}

func TestCheckboxTypeOption_ApplyFilter(t *testing.T) {
	opt := CheckboxTypeOption{}
	isChecked := models.CheckboxFilter{Condition: models.CheckboxIsChecked}
	isUnchecked := models.CheckboxFilter{Condition: models.CheckboxIsUnchecked}

	assert.True(t, opt.ApplyFilter(isChecked, models.FieldTypeCheckbox, true))
	assert.False(t, opt.ApplyFilter(isChecked, models.FieldTypeCheckbox, false))
	assert.True(t, opt.ApplyFilter(isUnchecked, models.FieldTypeCheckbox, false))
	assert.False(t, opt.ApplyFilter(isUnchecked, models.FieldTypeCheckbox, true))

	// non-checkbox fields never hide rows
	assert.True(t, opt.ApplyFilter(isChecked, models.FieldTypeRichText, false))
}

func TestCheckboxTypeOption_ApplyCmp(t *testing.T) {
	opt := CheckboxTypeOption{}

	assert.Equal(t, -1, opt.ApplyCmp(false, true, models.SortAscending))
	assert.Equal(t, 1, opt.ApplyCmp(false, true, models.SortDescending))
	assert.Equal(t, 1, opt.ApplyCmp(true, false, models.SortAscending))
	assert.Equal(t, 0, opt.ApplyCmp(true, true, models.SortAscending))
}

func TestCheckboxTypeOption_ApplyCmpWithUninitialized(t *testing.T) {
	opt := CheckboxTypeOption{}
	checked := CheckboxCellData(true)
	unchecked := CheckboxCellData(false)

	tests := []struct {
		name string
		a, b *CheckboxCellData
		sort models.SortCondition
		want int
	}{
		{"missing vs checked asc", nil, &checked, models.SortAscending, -1},
		{"missing vs checked desc", nil, &checked, models.SortDescending, 1},
		{"checked vs missing asc", &checked, nil, models.SortAscending, 1},
		{"checked vs missing desc", &checked, nil, models.SortDescending, -1},
		{"missing vs unchecked", nil, &unchecked, models.SortAscending, 0},
		{"unchecked vs missing", &unchecked, nil, models.SortAscending, 0},
		{"both missing", nil, nil, models.SortAscending, 0},
		{"both present", &checked, &unchecked, models.SortAscending, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opt.ApplyCmpWithUninitialized(tt.a, tt.b, tt.sort))
		})
	}
}
