package folder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/google/uuid"
)

// CloudSyncStore is a FolderStateStore that keeps the local store
// authoritative and mirrors every saved state to the cloud. Every
// snapshotEvery-th save of a workspace also records a snapshot. Cloud
// failures are logged and never fail the local save.
type CloudSyncStore struct {
	local         repositories.FolderStateStore
	cloud         folderSvc.FolderDocStateWriter
	snapshotEvery int
	logger        *slog.Logger

	mu    sync.Mutex
	saves map[string]int
}

var _ repositories.FolderStateStore = (*CloudSyncStore)(nil)

// NewCloudSyncStore wraps local. snapshotEvery <= 0 disables snapshots.
func NewCloudSyncStore(local repositories.FolderStateStore, cloud folderSvc.FolderDocStateWriter, snapshotEvery int, logger *slog.Logger) *CloudSyncStore {
	return &CloudSyncStore{
		local:         local,
		cloud:         cloud,
		snapshotEvery: snapshotEvery,
		logger:        logger,
		saves:         make(map[string]int),
	}
}

// LoadFolderState reads from the local store only
func (s *CloudSyncStore) LoadFolderState(ctx context.Context, uid int64, workspaceID string) ([]byte, error) {
	return s.local.LoadFolderState(ctx, uid, workspaceID)
}

// SaveFolderState writes locally, then mirrors to the cloud
func (s *CloudSyncStore) SaveFolderState(ctx context.Context, uid int64, workspaceID string, state []byte) error {
	if err := s.local.SaveFolderState(ctx, uid, workspaceID, state); err != nil {
		return err
	}

	var err error
	if s.shouldSnapshot(workspaceID) {
		err = s.cloud.SaveWithSnapshot(ctx, workspaceID, uid, "periodic", state)
	} else {
		err = s.cloud.SaveFolderDocState(ctx, workspaceID, uid, state)
	}
	if err != nil {
		s.logger.Warn("failed to sync folder to cloud", "workspace_id", workspaceID, "error", err)
	}
	return nil
}

func (s *CloudSyncStore) shouldSnapshot(workspaceID string) bool {
	if s.snapshotEvery <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[workspaceID]++
	return s.saves[workspaceID]%s.snapshotEvery == 0
}

// OfflineCloud is the cloud service used when no remote backend is
// configured. It never has doc states, so initialization falls back to the
// local store.
type OfflineCloud struct{}

var _ folderSvc.FolderCloudService = OfflineCloud{}

// ServiceName identifies the backend in logs
func (OfflineCloud) ServiceName() string { return "offline" }

// GetFolderDocState always reports the state as missing
func (OfflineCloud) GetFolderDocState(ctx context.Context, workspaceID string, uid int64, collabType models.CollabType, objectID string) ([]byte, error) {
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("no %s doc state for workspace %s", collabType, workspaceID)}
}

// CreateWorkspace returns a workspace that exists only in the caller's hands
func (OfflineCloud) CreateWorkspace(ctx context.Context, uid int64, name string) (*models.Workspace, error) {
	return &models.Workspace{
		ID:         uuid.NewString(),
		Name:       name,
		ChildViews: []string{},
		CreatedAt:  time.Now().Unix(),
		CreatedBy:  &uid,
	}, nil
}

// GetFolderSnapshots returns no snapshots
func (OfflineCloud) GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error) {
	return []models.FolderSnapshot{}, nil
}
