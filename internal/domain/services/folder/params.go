package folder

import (
	models "folio/internal/domain/models/folder"
)

// InitDataSource selects where Initialize builds the folder from
type InitDataSource struct {
	kind             initSourceKind
	docState         []byte
	createIfNotExist bool
	folderData       *models.FolderData
}

type initSourceKind int

const (
	sourceLocalDisk initSourceKind = iota
	sourceCloud
	sourceFolderData
)

// LocalDiskSource reads the folder from the local store
func LocalDiskSource(createIfNotExist bool) InitDataSource {
	return InitDataSource{kind: sourceLocalDisk, createIfNotExist: createIfNotExist}
}

// CloudSource decodes a doc state fetched from the cloud
func CloudSource(docState []byte) InitDataSource {
	return InitDataSource{kind: sourceCloud, docState: docState}
}

// FolderDataSource uses in-memory folder data (new users)
func FolderDataSource(data *models.FolderData) InitDataSource {
	return InitDataSource{kind: sourceFolderData, folderData: data}
}

// IsLocalDisk reports whether the source reads from the local store
func (s InitDataSource) IsLocalDisk() bool { return s.kind == sourceLocalDisk }

// IsCloud reports whether the source is a cloud doc state
func (s InitDataSource) IsCloud() bool { return s.kind == sourceCloud }

// CreateIfNotExist reports whether a missing local folder may be created
func (s InitDataSource) CreateIfNotExist() bool { return s.createIfNotExist }

// DocState returns the cloud doc state
func (s InitDataSource) DocState() []byte { return s.docState }

// FolderData returns the in-memory folder data
func (s InitDataSource) FolderData() *models.FolderData { return s.folderData }

// String names the source for logs
func (s InitDataSource) String() string {
	switch s.kind {
	case sourceLocalDisk:
		return "local_disk"
	case sourceCloud:
		return "cloud"
	default:
		return "folder_data"
	}
}

// CreateViewParams describes a view to create
type CreateViewParams struct {
	ParentViewID string            `json:"parent_view_id"`
	Name         string            `json:"name"`
	Desc         string            `json:"desc"`
	Layout       models.ViewLayout `json:"layout"`
	ViewID       string            `json:"view_id,omitempty"`
	InitialData  []byte            `json:"initial_data,omitempty"`
	Meta         map[string]string `json:"meta,omitempty"`
	SetAsCurrent bool              `json:"set_as_current"`
	Index        *int              `json:"index,omitempty"`
}

// CreateOrphanViewParams describes a view created outside the tree
type CreateOrphanViewParams struct {
	ViewID string            `json:"view_id,omitempty"`
	Name   string            `json:"name"`
	Layout models.ViewLayout `json:"layout"`
}

// UpdateViewParams carries optional description-level changes
type UpdateViewParams struct {
	ViewID     string             `json:"view_id"`
	Name       *string            `json:"name,omitempty"`
	Desc       *string            `json:"desc,omitempty"`
	Layout     *models.ViewLayout `json:"layout,omitempty"`
	IsFavorite *bool              `json:"is_favorite,omitempty"`
}

// UpdateViewIconParams replaces a view's icon; a nil icon removes it
type UpdateViewIconParams struct {
	ViewID string           `json:"view_id"`
	Icon   *models.ViewIcon `json:"icon"`
}

// CreateWorkspaceParams describes a workspace to create
type CreateWorkspaceParams struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// ImportParams describes an import; Data or FilePath must be set
type ImportParams struct {
	ParentViewID string            `json:"parent_view_id"`
	Name         string            `json:"name"`
	ViewLayout   models.ViewLayout `json:"view_layout"`
	ImportType   ImportType        `json:"import_type"`
	Data         []byte            `json:"data,omitempty"`
	FilePath     *string           `json:"file_path,omitempty"`
}
