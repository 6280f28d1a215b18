package config

const (
	// MaxViewNameLength is the maximum length for view names.
	// Names are displayed in a sidebar, so they are kept short.
	MaxViewNameLength = 255

	// MaxViewDescLength is the maximum length for view descriptions.
	MaxViewDescLength = 2000

	// MaxWorkspaceNameLength is the maximum length for workspace names.
	MaxWorkspaceNameLength = 255

	// MaxRecentViews is the number of entries kept in the recent section.
	// Older entries are dropped when the section grows past it.
	MaxRecentViews = 50

	// MaxSnapshotLimit caps the number of snapshots returned in one request.
	MaxSnapshotLimit = 100

	// MaxImportBytes caps inline import payloads.
	MaxImportBytes = 10 << 20
)
