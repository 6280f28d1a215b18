package database

// CheckboxFilterCondition selects which checkbox state stays visible
type CheckboxFilterCondition string

const (
	CheckboxIsChecked   CheckboxFilterCondition = "checked"
	CheckboxIsUnchecked CheckboxFilterCondition = "unchecked"
)

// CheckboxFilter keeps rows whose checkbox matches the target state
type CheckboxFilter struct {
	FieldID   string                  `json:"field_id"`
	Condition CheckboxFilterCondition `json:"condition"`
}

// IsVisible reports whether a cell with the given checked state passes the filter
func (f CheckboxFilter) IsVisible(checked bool) bool {
	switch f.Condition {
	case CheckboxIsChecked:
		return checked
	case CheckboxIsUnchecked:
		return !checked
	default:
		return true
	}
}

// RowQuery filters and sorts the rows of a database
type RowQuery struct {
	Filter      *CheckboxFilter
	SortFieldID string
	Sort        SortCondition
}
