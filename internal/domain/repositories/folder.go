package repositories

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// FolderStateStore persists encoded folder doc states on the local disk
type FolderStateStore interface {
	// LoadFolderState returns the stored doc state, or domain.ErrNotFound
	LoadFolderState(ctx context.Context, uid int64, workspaceID string) ([]byte, error)

	// SaveFolderState replaces the stored doc state
	SaveFolderState(ctx context.Context, uid int64, workspaceID string, state []byte) error
}

// ViewDataStore persists layout-specific view payloads (document bodies, database rows)
type ViewDataStore interface {
	// GetViewData returns the payload of a view, or domain.ErrNotFound
	GetViewData(ctx context.Context, viewID string) ([]byte, error)

	// PutViewData creates or replaces the payload of a view
	PutViewData(ctx context.Context, viewID string, layout models.ViewLayout, data []byte) error

	// DeleteViewData removes the payload of a view. Missing payloads are not an error.
	DeleteViewData(ctx context.Context, viewID string) error
}
