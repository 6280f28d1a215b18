package folder

import (
	"path/filepath"
	"strings"

	models "folio/internal/domain/models/folder"
)

// fileImportTypes maps file extensions to the import type and the layout the view gets
var fileImportTypes = map[string]struct {
	importType ImportType
	layout     models.ViewLayout
}{
	".txt":      {ImportTypePlainText, models.LayoutDocument},
	".md":       {ImportTypeMarkdown, models.LayoutDocument},
	".markdown": {ImportTypeMarkdown, models.LayoutDocument},
	".html":     {ImportTypeHTML, models.LayoutDocument},
	".htm":      {ImportTypeHTML, models.LayoutDocument},
	".csv":      {ImportTypeCSV, models.LayoutGrid},
	".xlsx":     {ImportTypeXLSX, models.LayoutGrid},
}

// ImportTypeForFile infers the import type and view layout from a file name
func ImportTypeForFile(filename string) (ImportType, models.ViewLayout, bool) {
	t, ok := fileImportTypes[strings.ToLower(filepath.Ext(filename))]
	return t.importType, t.layout, ok
}

// IsZipFile reports whether filename is a zip archive
func IsZipFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".zip")
}

// ImportZipParams describes a zip archive imported as a tree of views
type ImportZipParams struct {
	ParentViewID string `json:"parent_view_id"`
	Name         string `json:"name"`
	Data         []byte `json:"data"`
}
