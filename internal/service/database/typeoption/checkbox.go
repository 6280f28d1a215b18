package typeoption

import (
	"strings"

	models "folio/internal/domain/models/database"
)

const (
	checkboxYes = "Yes"
	checkboxNo  = "No"

	isSelectedKey = "is_selected"
)

// CheckboxCellData is the decoded value of a checkbox cell
type CheckboxCellData bool

// ParseCheckbox reads "yes", "true" and "1" (any case) as checked. Everything
// else, including the empty string, is unchecked.
func ParseCheckbox(s string) CheckboxCellData {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// IsCheckboxValue reports whether s is one of the recognised checkbox spellings
func IsCheckboxValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "0", "true", "false", "yes", "no":
		return true
	}
	return false
}

// IsChecked reports whether the cell is checked
func (d CheckboxCellData) IsChecked() bool { return bool(d) }

// String returns "Yes" or "No"
func (d CheckboxCellData) String() string {
	if d {
		return checkboxYes
	}
	return checkboxNo
}

// Cell converts the data to its stored cell form
func (d CheckboxCellData) Cell() models.Cell {
	return models.Cell{Data: d.String(), FieldType: models.FieldTypeCheckbox}
}

// CheckboxTypeOption handles cells of checkbox fields
type CheckboxTypeOption struct {
	IsSelected bool `json:"is_selected"`
}

// NewCheckboxTypeOption reads the type option from field data. Missing keys
// fall back to the zero value.
func NewCheckboxTypeOption(data models.TypeOptionData) CheckboxTypeOption {
	isSelected, _ := data.GetBool(isSelectedKey)
	return CheckboxTypeOption{IsSelected: isSelected}
}

// Data converts the type option back into field data
func (o CheckboxTypeOption) Data() models.TypeOptionData {
	return models.TypeOptionData{isSelectedKey: o.IsSelected}
}

// ParseCell decodes a stored cell
func (o CheckboxTypeOption) ParseCell(cell models.Cell) CheckboxCellData {
	return ParseCheckbox(cell.Data)
}

// DecodeCell decodes a cell that was written as decodedFieldType. Cells of
// other field types decode to unchecked.
func (o CheckboxTypeOption) DecodeCell(cell models.Cell, decodedFieldType models.FieldType) CheckboxCellData {
	if !decodedFieldType.IsCheckbox() {
		return false
	}
	return o.ParseCell(cell)
}

// StringifyCellData renders decoded data
func (o CheckboxTypeOption) StringifyCellData(data CheckboxCellData) string {
	return data.String()
}

// StringifyCell renders a stored cell
func (o CheckboxTypeOption) StringifyCell(cell models.Cell) string {
	return o.ParseCell(cell).String()
}

// NumericCell returns 1 for checked cells and 0 otherwise
func (o CheckboxTypeOption) NumericCell(cell models.Cell) float64 {
	if o.ParseCell(cell).IsChecked() {
		return 1
	}
	return 0
}

// ApplyChangeset parses a changeset string into the new cell and its data.
// The previous cell does not influence the result.
func (o CheckboxTypeOption) ApplyChangeset(changeset string, _ *models.Cell) (models.Cell, CheckboxCellData) {
	data := ParseCheckbox(changeset)
	return data.Cell(), data
}

// ApplyFilter reports whether a cell passes the filter. Cells of fields that
// are not checkboxes are always visible.
func (o CheckboxTypeOption) ApplyFilter(filter models.CheckboxFilter, fieldType models.FieldType, data CheckboxCellData) bool {
	if !fieldType.IsCheckbox() {
		return true
	}
	return filter.IsVisible(data.IsChecked())
}

// ApplyCmp orders unchecked before checked, reversed for descending sorts
func (o CheckboxTypeOption) ApplyCmp(a, b CheckboxCellData, sort models.SortCondition) int {
	return sort.EvaluateOrder(compareBool(bool(a), bool(b)))
}

// ApplyCmpWithUninitialized compares cells where either side may be missing.
// A missing cell sorts before a checked one and a checked cell after a
// missing one; every other pairing is equal.
func (o CheckboxTypeOption) ApplyCmpWithUninitialized(a, b *CheckboxCellData, sort models.SortCondition) int {
	switch {
	case a == nil && b != nil && b.IsChecked():
		return sort.EvaluateOrder(-1)
	case a != nil && b == nil && a.IsChecked():
		return sort.EvaluateOrder(1)
	default:
		return 0
	}
}

// Transformable reports whether cells of other types can be converted
func (o CheckboxTypeOption) Transformable() bool { return true }

// TransformTypeOptionCell converts a cell written by another field type. Only
// text cells convert; the second result is false otherwise.
func (o CheckboxTypeOption) TransformTypeOptionCell(cell models.Cell, fromType models.FieldType) (CheckboxCellData, bool) {
	if !fromType.IsText() {
		return false, false
	}
	return ParseCheckbox(cell.Data), true
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
