package database

// Cell is the raw stored representation of a value at a row/field coordinate
type Cell struct {
	Data      string    `json:"data"`
	FieldType FieldType `json:"field_type"`
}

// Row is a database row keyed by field id
type Row struct {
	ID        string          `json:"id"`
	Cells     map[string]Cell `json:"cells"`
	CreatedAt int64           `json:"created_at"`
}

// Cell returns the row's cell for fieldID, if present
func (r *Row) Cell(fieldID string) (Cell, bool) {
	if r.Cells == nil {
		return Cell{}, false
	}
	c, ok := r.Cells[fieldID]
	return c, ok
}
