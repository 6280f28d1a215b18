package folder

import (
	"context"
	"fmt"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
)

// CreateWorkspace creates a workspace through the cloud service
func (m *Manager) CreateWorkspace(ctx context.Context, params *folderSvc.CreateWorkspaceParams) (*models.Workspace, error) {
	if err := validateCreateWorkspaceParams(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uid, err := m.uid()
	if err != nil {
		return nil, err
	}

	workspace, err := m.cloud.CreateWorkspace(ctx, uid, params.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	m.logger.Info("workspace created", "workspace_id", workspace.ID, "service", m.cloud.ServiceName())
	m.send(workspace.ID, models.DidCreateWorkspace, workspace)
	return workspace, nil
}

// OpenWorkspace makes workspaceID current and returns it
func (m *Manager) OpenWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	if err := m.InitializeWithWorkspaceID(ctx, workspaceID); err != nil {
		return nil, err
	}
	return m.GetWorkspace(ctx, workspaceID)
}

// GetWorkspace returns the workspace when it is the current one
func (m *Manager) GetWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	var workspace *models.Workspace
	err := m.read(func(f *Folder) error {
		if f.WorkspaceID() != workspaceID {
			return &domain.NotFoundError{Message: fmt.Sprintf("workspace not found: %s", workspaceID)}
		}
		workspace = f.CurrentWorkspace()
		return nil
	})
	return workspace, err
}

// GetAllWorkspaces returns the workspaces known to this session
func (m *Manager) GetAllWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	workspaces := []*models.Workspace{}
	err := m.read(func(f *Folder) error {
		workspaces = append(workspaces, f.CurrentWorkspace())
		return nil
	})
	if err != nil {
		return []*models.Workspace{}, nil
	}
	return workspaces, nil
}

// GetCurrentWorkspace returns the workspace with its visible top-level views
func (m *Manager) GetCurrentWorkspace(ctx context.Context) (*models.WorkspaceWithViews, error) {
	var result *models.WorkspaceWithViews
	err := m.read(func(f *Folder) error {
		workspace := f.CurrentWorkspace()
		result = &models.WorkspaceWithViews{
			ID:        workspace.ID,
			Name:      workspace.Name,
			Views:     workspaceViews(f),
			CreatedAt: workspace.CreatedAt,
		}
		return nil
	})
	return result, err
}

// GetCurrentWorkspaceViews returns the visible top-level views with their children
func (m *Manager) GetCurrentWorkspaceViews(ctx context.Context) ([]*models.ViewWithChildren, error) {
	var views []*models.ViewWithChildren
	err := m.read(func(f *Folder) error {
		views = workspaceViews(f)
		return nil
	})
	return views, err
}

// GetWorkspaceViews returns the visible top-level views of workspaceID
func (m *Manager) GetWorkspaceViews(ctx context.Context, workspaceID string) ([]*models.View, error) {
	var views []*models.View
	err := m.read(func(f *Folder) error {
		if f.WorkspaceID() != workspaceID {
			return &domain.NotFoundError{Message: fmt.Sprintf("workspace not found: %s", workspaceID)}
		}
		views = visibleChildren(f, workspaceID, f.TrashedSet())
		return nil
	})
	return views, err
}

// GetWorkspaceSetting returns the current workspace id and the open view
func (m *Manager) GetWorkspaceSetting(ctx context.Context) (*models.WorkspaceSetting, error) {
	var setting *models.WorkspaceSetting
	err := m.read(func(f *Folder) error {
		setting = workspaceSetting(f)
		return nil
	})
	return setting, err
}

func workspaceViews(f *Folder) []*models.ViewWithChildren {
	trashed := f.TrashedSet()
	top := visibleChildren(f, f.WorkspaceID(), trashed)
	views := make([]*models.ViewWithChildren, 0, len(top))
	for _, v := range top {
		views = append(views, &models.ViewWithChildren{
			View:       v,
			ChildViews: visibleChildren(f, v.ID, trashed),
		})
	}
	return views
}

func workspaceSetting(f *Folder) *models.WorkspaceSetting {
	setting := &models.WorkspaceSetting{WorkspaceID: f.WorkspaceID()}
	if current := f.CurrentView(); current != "" {
		setting.LatestView = viewWithChildren(f, current, f.TrashedSet())
	}
	return setting
}
