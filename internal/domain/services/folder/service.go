package folder

import (
	"context"

	models "folio/internal/domain/models/folder"
)

// FolderService is the folder manager as seen by the transport layer
type FolderService interface {
	// Workspaces
	CreateWorkspace(ctx context.Context, params *CreateWorkspaceParams) (*models.Workspace, error)
	OpenWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error)
	GetAllWorkspaces(ctx context.Context) ([]*models.Workspace, error)
	GetCurrentWorkspace(ctx context.Context) (*models.WorkspaceWithViews, error)
	GetWorkspaceSetting(ctx context.Context) (*models.WorkspaceSetting, error)
	GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error)
	WorkspaceID() string
	ReloadWorkspace(ctx context.Context) error

	// Views
	CreateView(ctx context.Context, params *CreateViewParams) (*models.View, error)
	CreateOrphanView(ctx context.Context, params *CreateOrphanViewParams) (*models.View, error)
	NotifyParentViewChanged(ctx context.Context, parentIDs ...string)
	GetView(ctx context.Context, viewID string) (*models.ViewWithChildren, error)
	GetViewRelation(ctx context.Context, viewID string) (*models.ViewRelation, error)
	UpdateViewWithParams(ctx context.Context, params *UpdateViewParams) (*models.View, error)
	UpdateViewIconWithParams(ctx context.Context, params *UpdateViewIconParams) (*models.View, error)
	MoveView(ctx context.Context, viewID string, from, to int) error
	MoveNestedView(ctx context.Context, viewID, newParentID string, prevViewID *string) error
	DuplicateView(ctx context.Context, viewID string) (*models.View, error)
	CloseView(ctx context.Context, viewID string) error
	SetCurrentView(ctx context.Context, viewID string) error
	GetCurrentView(ctx context.Context) (*models.ViewWithChildren, error)
	Import(ctx context.Context, params *ImportParams) (*models.View, error)
	ImportZip(ctx context.Context, params *ImportZipParams) (*models.ZipImportResult, error)

	// Sections
	ToggleFavorites(ctx context.Context, viewID string) (*models.View, error)
	GetAllFavorites(ctx context.Context) ([]*models.View, error)
	GetAllRecentSections(ctx context.Context) ([]*models.View, error)
	AddRecentViews(ctx context.Context, viewIDs []string) error
	RemoveRecentViews(ctx context.Context, viewIDs []string) error

	// Trash
	MoveViewToTrash(ctx context.Context, viewID string) error
	GetAllTrash(ctx context.Context) ([]models.TrashInfo, error)
	RestoreTrash(ctx context.Context, viewID string) error
	RestoreAllTrash(ctx context.Context) error
	DeleteTrash(ctx context.Context, viewID string) error
	DeleteAllTrash(ctx context.Context) error
}
