package folder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"folio/internal/config"
	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	folderSvc "folio/internal/domain/services/folder"
)

// Manager is the single authority over the current workspace's folder. It
// mediates between the in-memory view tree, the cloud service, the local store
// and the layout handlers that own view payloads.
//
// Mutations run under the folder lock; notifications, handler hooks and I/O
// happen after it is released.
type Manager struct {
	wsMu        sync.RWMutex
	workspaceID string

	mutexFolder *MutexFolder
	user        folderSvc.FolderUser
	handlers    *OperationHandlers
	cloud       folderSvc.FolderCloudService
	store       repositories.FolderStateStore
	notifier    folderSvc.Notifier
	builder     *DefaultFolderBuilder
	logger      *slog.Logger
}

// NewManager creates a manager with no folder loaded
func NewManager(
	user folderSvc.FolderUser,
	handlers *OperationHandlers,
	cloud folderSvc.FolderCloudService,
	store repositories.FolderStateStore,
	notifier folderSvc.Notifier,
	builder *DefaultFolderBuilder,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		mutexFolder: &MutexFolder{},
		user:        user,
		handlers:    handlers,
		cloud:       cloud,
		store:       store,
		notifier:    notifier,
		builder:     builder,
		logger:      logger,
	}
}

func errNotInitialized() error {
	return &domain.NotInitializedError{Message: "folder is not initialized"}
}

func viewNotFound(viewID string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("view not found: %s", viewID)}
}

// WorkspaceID returns the id recorded by the last successful Initialize
func (m *Manager) WorkspaceID() string {
	m.wsMu.RLock()
	defer m.wsMu.RUnlock()
	return m.workspaceID
}

func (m *Manager) setWorkspaceID(id string) {
	m.wsMu.Lock()
	defer m.wsMu.Unlock()
	m.workspaceID = id
}

// read runs fn with the folder under the lock
func (m *Manager) read(fn func(f *Folder) error) error {
	return withFolder(m.mutexFolder, errNotInitialized, fn)
}

// mutate runs fn with the folder under the lock and, when it succeeds, writes
// the encoded folder to the local store once the lock is released
func (m *Manager) mutate(ctx context.Context, fn func(f *Folder) error) error {
	var (
		state       []byte
		uid         int64
		workspaceID string
	)
	err := withFolder(m.mutexFolder, errNotInitialized, func(f *Folder) error {
		if err := fn(f); err != nil {
			return err
		}
		encoded, err := f.Encode()
		if err != nil {
			return err
		}
		state, uid, workspaceID = encoded, f.uid, f.WorkspaceID()
		return nil
	})
	if err != nil {
		return err
	}
	m.persist(ctx, uid, workspaceID, state)
	return nil
}

func (m *Manager) persist(ctx context.Context, uid int64, workspaceID string, state []byte) {
	if err := m.store.SaveFolderState(ctx, uid, workspaceID, state); err != nil {
		m.logger.Error("failed to persist folder", "workspace_id", workspaceID, "error", err)
	}
}

func (m *Manager) uid() (int64, error) {
	uid, err := m.user.UserID()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}
	return uid, nil
}

// Initialize loads the folder of workspaceID from source and makes it current
func (m *Manager) Initialize(ctx context.Context, uid int64, workspaceID string, source folderSvc.InitDataSource) error {
	m.logger.Info("initializing folder", "uid", uid, "workspace_id", workspaceID, "source", source.String())

	var (
		folder *Folder
		err    error
	)
	switch {
	case source.IsCloud():
		folder, err = DecodeFolder(uid, source.DocState())
	case source.IsLocalDisk():
		folder, err = m.loadLocalFolder(ctx, uid, workspaceID, source.CreateIfNotExist())
	default:
		folder, err = NewFolder(uid, source.FolderData())
	}
	if err != nil {
		return fmt.Errorf("failed to initialize folder from %s: %w", source.String(), err)
	}

	if folder.WorkspaceID() != workspaceID {
		m.logger.Warn("folder workspace id mismatch",
			"expected", workspaceID,
			"actual", folder.WorkspaceID(),
		)
	}

	state, err := folder.Encode()
	if err != nil {
		return err
	}

	m.setWorkspaceID(workspaceID)
	m.mutexFolder.Set(folder)
	m.persist(ctx, uid, folder.WorkspaceID(), state)

	m.logger.Info("folder initialized", "workspace_id", workspaceID, "source", source.String())
	return nil
}

func (m *Manager) loadLocalFolder(ctx context.Context, uid int64, workspaceID string, createIfNotExist bool) (*Folder, error) {
	state, err := m.store.LoadFolderState(ctx, uid, workspaceID)
	if err == nil {
		return DecodeFolder(uid, state)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if !createIfNotExist {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("no local folder for workspace %s", workspaceID)}
	}

	data, views, err := m.builder.Build(uid, workspaceID)
	if err != nil {
		return nil, err
	}
	m.createBuiltInPayloads(ctx, uid, views)
	return NewFolder(uid, data)
}

// createBuiltInPayloads asks the layout handlers for the default payload of
// every templated view. Failures leave the view without a payload.
func (m *Manager) createBuiltInPayloads(ctx context.Context, uid int64, views []*models.View) {
	for _, view := range views {
		handler, err := m.handlers.Get(view.Layout)
		if err != nil {
			m.logger.Warn("no handler for templated view", "view_id", view.ID, "layout", view.Layout)
			continue
		}
		if err := handler.CreateBuiltInView(ctx, uid, view.ID, view.Name, view.Layout); err != nil {
			m.logger.Error("failed to create templated view payload", "view_id", view.ID, "error", err)
		}
	}
}

// InitializeWithWorkspaceID loads the folder from the cloud, falling back to
// the local store when the cloud cannot provide it
func (m *Manager) InitializeWithWorkspaceID(ctx context.Context, workspaceID string) error {
	uid, err := m.uid()
	if err != nil {
		return err
	}

	docState, err := m.cloud.GetFolderDocState(ctx, workspaceID, uid, models.CollabTypeFolder, workspaceID)
	if err == nil {
		err = m.Initialize(ctx, uid, workspaceID, folderSvc.CloudSource(docState))
	}
	if err != nil {
		m.logger.Warn("failed to initialize folder from cloud, using local disk",
			"service", m.cloud.ServiceName(),
			"workspace_id", workspaceID,
			"error", err,
		)
		return m.Initialize(ctx, uid, workspaceID, folderSvc.LocalDiskSource(false))
	}
	return nil
}

// InitializeWithNewUser initializes a new user's folder from source. Returning
// users get the cloud state, or source when the cloud has none.
func (m *Manager) InitializeWithNewUser(ctx context.Context, uid int64, isNew bool, source folderSvc.InitDataSource, workspaceID string) error {
	if isNew {
		return m.Initialize(ctx, uid, workspaceID, source)
	}

	docState, err := m.cloud.GetFolderDocState(ctx, workspaceID, uid, models.CollabTypeFolder, workspaceID)
	switch {
	case err == nil:
		return m.Initialize(ctx, uid, workspaceID, folderSvc.CloudSource(docState))
	case errors.Is(err, domain.ErrNotFound):
		m.logger.Info("no cloud folder for returning user", "uid", uid, "workspace_id", workspaceID)
		return m.Initialize(ctx, uid, workspaceID, source)
	default:
		return fmt.Errorf("failed to fetch folder doc state: %w", err)
	}
}

// ReloadWorkspace re-initializes the current workspace from the cloud
func (m *Manager) ReloadWorkspace(ctx context.Context) error {
	workspaceID := m.WorkspaceID()
	if workspaceID == "" {
		return errNotInitialized()
	}
	uid, err := m.uid()
	if err != nil {
		return err
	}

	docState, err := m.cloud.GetFolderDocState(ctx, workspaceID, uid, models.CollabTypeFolder, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to fetch folder doc state: %w", err)
	}
	return m.Initialize(ctx, uid, workspaceID, folderSvc.CloudSource(docState))
}

// Clear drops the in-memory folder
func (m *Manager) Clear() {
	m.mutexFolder.Set(nil)
	m.setWorkspaceID("")
}

// GetViewRelation returns the parent and ordered siblings of a view
func (m *Manager) GetViewRelation(ctx context.Context, viewID string) (*models.ViewRelation, error) {
	var relation *models.ViewRelation
	err := m.read(func(f *Folder) error {
		rel, ok := f.Relation(viewID)
		if !ok {
			return viewNotFound(viewID)
		}
		relation = rel
		return nil
	})
	return relation, err
}

// GetFolderSnapshots returns the newest snapshots of a workspace folder
func (m *Manager) GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error) {
	if limit <= 0 || limit > config.MaxSnapshotLimit {
		limit = config.MaxSnapshotLimit
	}
	snapshots, err := m.cloud.GetFolderSnapshots(ctx, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder snapshots: %w", err)
	}
	return snapshots, nil
}

var _ folderSvc.FolderService = (*Manager)(nil)
