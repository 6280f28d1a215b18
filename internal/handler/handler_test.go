package handler

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folio/internal/auth"
	dbModels "folio/internal/domain/models/database"
	docModels "folio/internal/domain/models/document"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/handler/sse"
	"folio/internal/notification"
	"folio/internal/repository/sqlite"
	"folio/internal/service/database"
	"folio/internal/service/document"
	"folio/internal/service/folder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkspaceID = "ws-test"

type testServer struct {
	mux     *http.ServeMux
	manager *folder.Manager
	hub     *notification.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.OpenStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	docHandler := document.NewHandler(store, document.NewConverters(), logger)
	dbHandler := database.NewHandler(store, logger)
	handlers := folder.NewOperationHandlers()
	handlers.Register(docHandler, models.LayoutDocument)
	handlers.Register(dbHandler, dbHandler.Layouts()...)

	builder, err := folder.NewDefaultFolderBuilder()
	require.NoError(t, err)

	hub := notification.NewHub(16, logger)
	manager := folder.NewManager(auth.NewSessionUser(1), handlers, folder.OfflineCloud{}, store, hub, builder, logger)

	data := &models.FolderData{Workspace: &models.Workspace{ID: testWorkspaceID, Name: "Workspace"}}
	require.NoError(t, manager.Initialize(ctx, 1, testWorkspaceID, folderSvc.FolderDataSource(data)))

	mux := http.NewServeMux()
	RegisterRoutes(mux, &Handlers{
		Workspace: NewWorkspaceHandler(manager, logger),
		View:      NewViewHandler(manager, logger),
		Section:   NewSectionHandler(manager, logger),
		Import:    NewImportHandler(manager, logger),
		Database:  NewDatabaseHandler(database.NewDatabaseService(store, logger), logger),
		Document:  NewDocumentHandler(docHandler, logger),
		Events:    NewEventsHandler(hub, &sse.Config{KeepAliveInterval: time.Hour}, logger),
	})

	return &testServer{mux: mux, manager: manager, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) createView(t *testing.T, parentID, name string, layout models.ViewLayout) *models.View {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/views", map[string]interface{}{
		"parent_view_id": parentID,
		"name":           name,
		"layout":         layout,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[*models.View](t, rec)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestWorkspaceRoutes(t *testing.T) {
	s := newTestServer(t)
	doc := s.createView(t, "", "Notes", models.LayoutDocument)

	rec := s.do(t, http.MethodGet, "/api/workspace", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	workspace := decode[models.WorkspaceWithViews](t, rec)
	assert.Equal(t, testWorkspaceID, workspace.ID)
	require.Len(t, workspace.Views, 1)
	assert.Equal(t, doc.ID, workspace.Views[0].ID)

	rec = s.do(t, http.MethodPost, "/api/views/"+doc.ID+"/current", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/workspace/setting", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	setting := decode[models.WorkspaceSetting](t, rec)
	assert.Equal(t, testWorkspaceID, setting.WorkspaceID)
	require.NotNil(t, setting.LatestView)
	assert.Equal(t, doc.ID, setting.LatestView.ID)

	rec = s.do(t, http.MethodGet, "/api/workspace/snapshots?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.FolderSnapshot](t, rec))

	rec = s.do(t, http.MethodPost, "/api/workspaces", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/workspaces", map[string]string{"name": "Second"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Second", decode[models.Workspace](t, rec).Name)
}

func TestOpenWorkspaceWithoutStateIsNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/workspaces/missing/open", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, testWorkspaceID, s.manager.WorkspaceID())
}

func TestViewLifecycle(t *testing.T) {
	s := newTestServer(t)
	parent := s.createView(t, testWorkspaceID, "Parent", models.LayoutDocument)
	child := s.createView(t, parent.ID, "Child", models.LayoutDocument)

	rec := s.do(t, http.MethodGet, "/api/views/"+parent.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	withChildren := decode[models.ViewWithChildren](t, rec)
	require.Len(t, withChildren.ChildViews, 1)
	assert.Equal(t, child.ID, withChildren.ChildViews[0].ID)

	rec = s.do(t, http.MethodGet, "/api/views/"+child.ID+"/relation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	relation := decode[models.ViewRelation](t, rec)
	assert.False(t, relation.IsWorkspace)
	assert.Equal(t, parent.ID, relation.ParentID)
	assert.Equal(t, []string{child.ID}, relation.ChildIDs)

	rec = s.do(t, http.MethodPatch, "/api/views/"+child.ID, map[string]interface{}{
		"name":        "Renamed",
		"is_favorite": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.View](t, rec)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.IsFavorite)

	rec = s.do(t, http.MethodPatch, "/api/views/"+child.ID, map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/views/"+child.ID+"/icon", map[string]interface{}{
		"icon": map[string]string{"ty": "emoji", "value": "📄"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	iconed := decode[models.View](t, rec)
	require.NotNil(t, iconed.Icon)
	assert.Equal(t, models.IconEmoji, iconed.Icon.Type)

	rec = s.do(t, http.MethodPost, "/api/views/"+child.ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	duplicate := decode[models.View](t, rec)
	assert.NotEqual(t, child.ID, duplicate.ID)
	assert.Equal(t, parent.ID, duplicate.ParentViewID)

	rec = s.do(t, http.MethodPost, "/api/views/"+duplicate.ID+"/move-nested", map[string]interface{}{
		"new_parent_id": testWorkspaceID,
		"prev_view_id":  nil,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/workspace", nil)
	workspace := decode[models.WorkspaceWithViews](t, rec)
	require.Len(t, workspace.Views, 2)
	assert.Equal(t, duplicate.ID, workspace.Views[0].ID)

	rec = s.do(t, http.MethodPost, "/api/views/"+duplicate.ID+"/move", map[string]int{"from": 0, "to": 1})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/workspace", nil)
	workspace = decode[models.WorkspaceWithViews](t, rec)
	assert.Equal(t, parent.ID, workspace.Views[0].ID)
	assert.Equal(t, duplicate.ID, workspace.Views[1].ID)

	rec = s.do(t, http.MethodPost, "/api/views/"+child.ID+"/close", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateViewErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/views", map[string]interface{}{
		"name":   "Chat",
		"layout": models.LayoutChat,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, string(models.LayoutChat), body["layout"])

	rec = s.do(t, http.MethodPost, "/api/views", map[string]interface{}{"name": "No layout"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/views/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/views/current", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSectionRoutes(t *testing.T) {
	s := newTestServer(t)
	first := s.createView(t, testWorkspaceID, "First", models.LayoutDocument)
	second := s.createView(t, testWorkspaceID, "Second", models.LayoutDocument)

	rec := s.do(t, http.MethodPost, "/api/views/"+first.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.View](t, rec).IsFavorite)

	rec = s.do(t, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	favorites := decode[[]models.View](t, rec)
	require.Len(t, favorites, 1)
	assert.Equal(t, first.ID, favorites[0].ID)

	rec = s.do(t, http.MethodPost, "/api/recent", map[string][]string{"view_ids": {second.ID, first.ID}})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/recent", nil)
	recent := decode[[]models.View](t, rec)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)

	rec = s.do(t, http.MethodDelete, "/api/recent", map[string][]string{"view_ids": {second.ID}})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, decode[[]models.View](t, s.do(t, http.MethodGet, "/api/recent", nil)), 1)

	rec = s.do(t, http.MethodPost, "/api/recent", map[string][]string{"view_ids": {}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Trash hides the view everywhere until restored
	rec = s.do(t, http.MethodDelete, "/api/views/"+first.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	trash := decode[[]models.TrashInfo](t, s.do(t, http.MethodGet, "/api/trash", nil))
	require.Len(t, trash, 1)
	assert.Equal(t, first.ID, trash[0].ID)
	assert.Empty(t, decode[[]models.View](t, s.do(t, http.MethodGet, "/api/favorites", nil)))

	rec = s.do(t, http.MethodPost, "/api/trash/"+first.ID+"/restore", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, decode[[]models.TrashInfo](t, s.do(t, http.MethodGet, "/api/trash", nil)))

	workspace := decode[models.WorkspaceWithViews](t, s.do(t, http.MethodGet, "/api/workspace", nil))
	require.Len(t, workspace.Views, 2)
	assert.Equal(t, first.ID, workspace.Views[0].ID)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/views/"+second.ID, nil).Code)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/trash/"+second.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/views/"+second.ID, nil).Code)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/views/"+first.ID, nil).Code)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/trash/restore", nil).Code)
	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/trash", nil).Code)
	assert.Len(t, decode[models.WorkspaceWithViews](t, s.do(t, http.MethodGet, "/api/workspace", nil)).Views, 1)
}

func TestDocumentRoutes(t *testing.T) {
	s := newTestServer(t)
	doc := s.createView(t, testWorkspaceID, "Doc", models.LayoutDocument)

	rec := s.do(t, http.MethodPut, "/api/documents/"+doc.ID, map[string]string{"content": "one two three"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[docModels.Document](t, rec).WordCount)

	rec = s.do(t, http.MethodGet, "/api/documents/"+doc.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "one two three", decode[docModels.Document](t, rec).Content)

	rec = s.do(t, http.MethodGet, "/api/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatabaseRoutes(t *testing.T) {
	s := newTestServer(t)
	grid := s.createView(t, testWorkspaceID, "Tasks", models.LayoutGrid)

	rec := s.do(t, http.MethodGet, "/api/databases/"+grid.ID+"/fields", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fields := decode[[]dbModels.Field](t, rec)
	var checkbox dbModels.Field
	for _, field := range fields {
		if field.FieldType.IsCheckbox() {
			checkbox = field
		}
	}
	require.NotEmpty(t, checkbox.ID)

	rows := decode[[]dbModels.Row](t, s.do(t, http.MethodGet, "/api/databases/"+grid.ID+"/rows", nil))
	require.NotEmpty(t, rows)

	rec = s.do(t, http.MethodPut, "/api/databases/"+grid.ID+"/cells", map[string]string{
		"row_id":    rows[0].ID,
		"field_id":  checkbox.ID,
		"changeset": "true",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Yes", decode[dbModels.Cell](t, rec).Data)

	rec = s.do(t, http.MethodGet, "/api/databases/"+grid.ID+"/rows?filter_field="+checkbox.ID+"&filter=checked", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	checked := decode[[]dbModels.Row](t, rec)
	require.Len(t, checked, 1)
	assert.Equal(t, rows[0].ID, checked[0].ID)

	rec = s.do(t, http.MethodGet, "/api/databases/"+grid.ID+"/rows?filter_field="+checkbox.ID+"&filter=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/databases/"+grid.ID+"/rows?sort_field="+checkbox.ID+"&sort=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/databases/"+grid.ID+"/cells", map[string]string{
		"row_id":   "missing",
		"field_id": checkbox.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartImport(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("markdown into the workspace", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, multipartImport(t, "notes.md", "# Notes\n\nhello world", nil))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		view := decode[models.View](t, rec)
		assert.Equal(t, "notes", view.Name)
		assert.Equal(t, models.LayoutDocument, view.Layout)
		assert.Equal(t, testWorkspaceID, view.ParentViewID)

		doc := decode[docModels.Document](t, s.do(t, http.MethodGet, "/api/documents/"+view.ID, nil))
		assert.Contains(t, doc.Content, "hello world")
	})

	t.Run("csv becomes a grid", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, multipartImport(t, "tasks.csv", "Name,Done\nwrite,Yes\nship,No\n", map[string]string{"name": "Tasks"}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		view := decode[models.View](t, rec)
		assert.Equal(t, "Tasks", view.Name)
		assert.Equal(t, models.LayoutGrid, view.Layout)

		rows := decode[[]dbModels.Row](t, s.do(t, http.MethodGet, "/api/databases/"+view.ID+"/rows", nil))
		assert.Len(t, rows, 2)
	})

	t.Run("zip becomes a view tree", func(t *testing.T) {
		var archive bytes.Buffer
		zw := zip.NewWriter(&archive)
		for name, content := range map[string]string{"notes/a.md": "alpha", "b.txt": "beta"} {
			f, err := zw.Create(name)
			require.NoError(t, err)
			_, err = f.Write([]byte(content))
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())

		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, multipartImport(t, "bundle.zip", archive.String(), nil))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		result := decode[models.ZipImportResult](t, rec)
		assert.Equal(t, "bundle", result.Root.Name)
		assert.Equal(t, 2, result.Summary.Created)
		assert.Len(t, result.Views, 3) // two files plus the notes directory
	})

	t.Run("unknown extension", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, multipartImport(t, "image.png", "png", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("name", "empty"))
		require.NoError(t, writer.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventsStream(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.mux)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return s.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	view, err := s.manager.CreateView(context.Background(), &folderSvc.CreateViewParams{
		ParentViewID: testWorkspaceID,
		Name:         "Streamed",
		Layout:       models.LayoutDocument,
	})
	require.NoError(t, err)
	require.NoError(t, s.manager.AddRecentViews(context.Background(), []string{view.ID}))

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, string(models.DidUpdateRecentViews), event)

	var n models.Notification
	require.NoError(t, json.Unmarshal([]byte(data), &n))
	assert.Equal(t, models.DidUpdateRecentViews, n.Kind)
	assert.Equal(t, models.RecentObjectID, n.ID)
}

func TestCreateViewNotifiesParent(t *testing.T) {
	s := newTestServer(t)
	events, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	view := s.createView(t, "", "Announced", models.LayoutDocument)

	select {
	case n := <-events:
		assert.Equal(t, models.DidUpdateWorkspaceViews, n.Kind)
		assert.Equal(t, testWorkspaceID, n.ID)
		views, ok := n.Payload.([]*models.View)
		require.True(t, ok)
		require.Len(t, views, 1)
		assert.Equal(t, view.ID, views[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after creating a view")
	}
}

func TestCreateOrphanViewRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/views/orphans", map[string]interface{}{
		"name":   "Loose",
		"layout": models.LayoutGrid,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orphan := decode[*models.View](t, rec)
	assert.Equal(t, orphan.ID, orphan.ParentViewID)

	rec = s.do(t, http.MethodGet, "/api/workspace", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	workspace := decode[models.WorkspaceWithViews](t, rec)
	assert.Empty(t, workspace.Views)

	rec = s.do(t, http.MethodGet, "/api/databases/"+orphan.ID+"/fields", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/views/orphans", map[string]interface{}{"name": "No layout"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
