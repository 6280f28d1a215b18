package folder

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// FolderCloudService is the remote synchronization collaborator
type FolderCloudService interface {
	// GetFolderDocState returns the replicated doc state, or domain.ErrNotFound
	GetFolderDocState(ctx context.Context, workspaceID string, uid int64, collabType models.CollabType, objectID string) ([]byte, error)

	// CreateWorkspace creates a new empty workspace owned by uid
	CreateWorkspace(ctx context.Context, uid int64, name string) (*models.Workspace, error)

	// GetFolderSnapshots returns up to limit snapshots, newest first
	GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error)

	// ServiceName identifies the backend in logs
	ServiceName() string
}

// FolderUser represents the signed-in user of the folder
type FolderUser interface {
	UserID() (int64, error)
}

// Notifier delivers change notifications to the presentation layer.
// Notify must not block the caller.
type Notifier interface {
	Notify(n models.Notification)
}

// FolderDocStateWriter pushes local folder doc states to the cloud
type FolderDocStateWriter interface {
	// SaveFolderDocState replaces the cloud doc state of a workspace folder
	SaveFolderDocState(ctx context.Context, workspaceID string, uid int64, state []byte) error

	// SaveWithSnapshot replaces the doc state and records it as a snapshot
	SaveWithSnapshot(ctx context.Context, workspaceID string, uid int64, desc string, state []byte) error
}
