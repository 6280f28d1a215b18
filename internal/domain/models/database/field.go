package database

// FieldType identifies how the cells of a field are interpreted
type FieldType int

const (
	FieldTypeRichText FieldType = 0
	FieldTypeNumber   FieldType = 1
	FieldTypeCheckbox FieldType = 5
)

// IsCheckbox reports whether the field type is a checkbox
func (t FieldType) IsCheckbox() bool { return t == FieldTypeCheckbox }

// IsText reports whether the field type is rich text
func (t FieldType) IsText() bool { return t == FieldTypeRichText }

// String returns a readable name for the field type
func (t FieldType) String() string {
	switch t {
	case FieldTypeRichText:
		return "rich_text"
	case FieldTypeNumber:
		return "number"
	case FieldTypeCheckbox:
		return "checkbox"
	default:
		return "unknown"
	}
}

// TypeOptionData is the loosely-typed configuration map stored on a field
type TypeOptionData map[string]interface{}

// GetBool returns the boolean stored under key, if any
func (d TypeOptionData) GetBool(key string) (bool, bool) {
	v, ok := d[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Field is a column of a database
type Field struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	FieldType  FieldType      `json:"field_type"`
	IsPrimary  bool           `json:"is_primary"`
	TypeOption TypeOptionData `json:"type_option,omitempty"`
}
