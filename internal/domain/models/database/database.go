package database

import "folio/internal/domain/models/folder"

// DatabaseData is the payload stored for grid, board and calendar views
type DatabaseData struct {
	ViewID string            `json:"view_id"`
	Layout folder.ViewLayout `json:"layout"`
	Fields []Field           `json:"fields"`
	Rows   []Row             `json:"rows"`
}

// Field returns the field with the given id
func (d *DatabaseData) Field(fieldID string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].ID == fieldID {
			return &d.Fields[i], true
		}
	}
	return nil, false
}
