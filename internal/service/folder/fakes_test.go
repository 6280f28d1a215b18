package folder

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/stretchr/testify/require"
)

type staticUser struct{ id int64 }

func (u staticUser) UserID() (int64, error) { return u.id, nil }

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (n *recordingNotifier) Notify(notification models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) kinds() []models.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]models.NotificationKind, 0, len(n.notifications))
	for _, notification := range n.notifications {
		kinds = append(kinds, notification.Kind)
	}
	return kinds
}

func (n *recordingNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.notifications...)
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = nil
}

type memStateStore struct {
	mu     sync.Mutex
	states map[string][]byte
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string][]byte)}
}

func (s *memStateStore) LoadFolderState(ctx context.Context, uid int64, workspaceID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[workspaceID]
	if !ok {
		return nil, &domain.NotFoundError{Message: "no state"}
	}
	return state, nil
}

func (s *memStateStore) SaveFolderState(ctx context.Context, uid int64, workspaceID string, state []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[workspaceID] = state
	return nil
}

type fakeCloud struct {
	docStates map[string][]byte
	err       error
	created   []string
	snapshots []models.FolderSnapshot
	lastLimit int
}

func (c *fakeCloud) GetFolderDocState(ctx context.Context, workspaceID string, uid int64, collabType models.CollabType, objectID string) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	state, ok := c.docStates[workspaceID]
	if !ok {
		return nil, &domain.NotFoundError{Message: "no doc state"}
	}
	return state, nil
}

func (c *fakeCloud) CreateWorkspace(ctx context.Context, uid int64, name string) (*models.Workspace, error) {
	c.created = append(c.created, name)
	return &models.Workspace{ID: "ws-created", Name: name}, nil
}

func (c *fakeCloud) GetFolderSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.FolderSnapshot, error) {
	c.lastLimit = limit
	return c.snapshots, nil
}

func (c *fakeCloud) ServiceName() string { return "fake" }

// fakeHandler records the hooks called by the manager
type fakeHandler struct {
	mu        sync.Mutex
	builtIn   []string
	withData  map[string][]byte
	imported  map[string][]byte
	deleted   []string
	closed    []string
	updated   []string
	duplicate []byte
}

func newFakeHandler() *fakeHandler {
	return &fakeHandler{
		withData: make(map[string][]byte),
		imported: make(map[string][]byte),
	}
}

func (h *fakeHandler) CreateBuiltInView(ctx context.Context, uid int64, viewID, name string, layout models.ViewLayout) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builtIn = append(h.builtIn, viewID)
	return nil
}

func (h *fakeHandler) CreateViewWithViewData(ctx context.Context, uid int64, viewID, name string, data []byte, layout models.ViewLayout, meta map[string]string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.withData[viewID] = data
	return nil
}

func (h *fakeHandler) DuplicateView(ctx context.Context, viewID string) ([]byte, error) {
	return h.duplicate, nil
}

func (h *fakeHandler) ImportFromBytes(ctx context.Context, uid int64, viewID, name string, importType folderSvc.ImportType, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.imported[viewID] = data
	return nil
}

func (h *fakeHandler) ImportFromFilePath(ctx context.Context, viewID, name, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.imported[viewID] = []byte(path)
	return nil
}

func (h *fakeHandler) DeleteView(ctx context.Context, viewID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleted = append(h.deleted, viewID)
	return nil
}

func (h *fakeHandler) CloseView(ctx context.Context, viewID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = append(h.closed, viewID)
	return nil
}

func (h *fakeHandler) DidUpdateView(ctx context.Context, oldView, newView *models.View) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updated = append(h.updated, newView.ID)
	return nil
}

type managerFixture struct {
	manager  *Manager
	notifier *recordingNotifier
	cloud    *fakeCloud
	store    *memStateStore
	handler  *fakeHandler
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	builder, err := NewDefaultFolderBuilder()
	require.NoError(t, err)

	fx := &managerFixture{
		notifier: &recordingNotifier{},
		cloud:    &fakeCloud{docStates: make(map[string][]byte)},
		store:    newMemStateStore(),
		handler:  newFakeHandler(),
	}
	handlers := NewOperationHandlers()
	handlers.Register(fx.handler, models.LayoutDocument, models.LayoutGrid, models.LayoutBoard, models.LayoutCalendar)

	fx.manager = NewManager(staticUser{id: 1}, handlers, fx.cloud, fx.store, fx.notifier, builder, testLogger())
	return fx
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// initWith loads an empty workspace and creates the given top-level views in order
func (fx *managerFixture) initWith(t *testing.T, names ...string) map[string]string {
	t.Helper()
	ctx := context.Background()

	data := &models.FolderData{Workspace: &models.Workspace{ID: testWorkspaceID, Name: "Workspace"}}
	require.NoError(t, fx.manager.Initialize(ctx, 1, testWorkspaceID, folderSvc.FolderDataSource(data)))

	ids := make(map[string]string, len(names))
	for _, name := range names {
		view, err := fx.manager.CreateView(ctx, &folderSvc.CreateViewParams{
			ParentViewID: testWorkspaceID,
			Name:         name,
			Layout:       models.LayoutDocument,
		})
		require.NoError(t, err)
		ids[name] = view.ID
	}
	fx.notifier.reset()
	return ids
}

func (fx *managerFixture) createChild(t *testing.T, parentID, name string) string {
	t.Helper()
	view, err := fx.manager.CreateView(context.Background(), &folderSvc.CreateViewParams{
		ParentViewID: parentID,
		Name:         name,
		Layout:       models.LayoutDocument,
	})
	require.NoError(t, err)
	return view.ID
}
