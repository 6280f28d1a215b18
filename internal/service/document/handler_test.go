package document

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"folio/internal/domain"
	folderModels "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memViewDataStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memViewDataStore) GetViewData(ctx context.Context, viewID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[viewID]
	if !ok {
		return nil, &domain.NotFoundError{Message: "view data not found"}
	}
	return raw, nil
}

func (s *memViewDataStore) PutViewData(ctx context.Context, viewID string, layout folderModels.ViewLayout, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewID] = data
	return nil
}

func (s *memViewDataStore) DeleteViewData(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, viewID)
	return nil
}

func newTestHandler() (*Handler, *memViewDataStore) {
	store := &memViewDataStore{data: make(map[string][]byte)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, NewConverters(), logger), store
}

func TestHandler_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h, store := newTestHandler()

	require.NoError(t, h.CreateBuiltInView(ctx, 1, "doc", "Notes", folderModels.LayoutDocument))
	doc, err := h.GetDocument(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "Notes", doc.Name)
	assert.Empty(t, doc.Content)

	doc, err = h.UpdateContent(ctx, "doc", "# Plan\n\n- buy milk\n- call **Sam**")
	require.NoError(t, err)
	assert.Equal(t, 5, doc.WordCount)

	raw, err := h.DuplicateView(ctx, "doc")
	require.NoError(t, err)
	require.NoError(t, h.CreateViewWithViewData(ctx, 1, "copy", "Notes (copy)", raw, folderModels.LayoutDocument, nil))
	duplicate, err := h.GetDocument(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, doc.Content, duplicate.Content)

	oldView := &folderModels.View{ID: "doc", Name: "Notes"}
	newView := &folderModels.View{ID: "doc", Name: "Plan"}
	require.NoError(t, h.DidUpdateView(ctx, oldView, newView))
	doc, err = h.GetDocument(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "Plan", doc.Name)

	require.NoError(t, h.DeleteView(ctx, "doc"))
	assert.NotContains(t, store.data, "doc")
	_, err = h.GetDocument(ctx, "doc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandler_ImportFromBytes(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler()

	t.Run("html is sanitized and converted", func(t *testing.T) {
		html := `<h1>Title</h1><p onclick="steal()">Hello <strong>world</strong></p><script>alert(1)</script>`
		require.NoError(t, h.ImportFromBytes(ctx, 1, "html", "Page", folderSvc.ImportTypeHTML, []byte(html)))

		doc, err := h.GetDocument(ctx, "html")
		require.NoError(t, err)
		assert.Contains(t, doc.Content, "# Title")
		assert.Contains(t, doc.Content, "**world**")
		assert.NotContains(t, doc.Content, "alert")
		assert.NotContains(t, doc.Content, "steal")
	})

	t.Run("markdown passes through", func(t *testing.T) {
		require.NoError(t, h.ImportFromBytes(ctx, 1, "md", "Readme", folderSvc.ImportTypeMarkdown, []byte("## Hi")))
		doc, err := h.GetDocument(ctx, "md")
		require.NoError(t, err)
		assert.Equal(t, "## Hi", doc.Content)
	})

	t.Run("csv is rejected", func(t *testing.T) {
		err := h.ImportFromBytes(ctx, 1, "csv", "Sheet", folderSvc.ImportTypeCSV, []byte("a,b"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestHandler_ImportFromFilePath(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler()
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.TXT")
	require.NoError(t, os.WriteFile(path, []byte("plain words here"), 0o644))
	require.NoError(t, h.ImportFromFilePath(ctx, "txt", "Notes", path))

	doc, err := h.GetDocument(ctx, "txt")
	require.NoError(t, err)
	assert.Equal(t, "plain words here", doc.Content)
	assert.Equal(t, 3, doc.WordCount)

	err = h.ImportFromFilePath(ctx, "pdf", "Paper", filepath.Join(dir, "paper.pdf"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"empty", "", 0},
		{"plain", "one two three", 3},
		{"heading and list", "# Title\n- first item\n1. second", 4},
		{"fenced code ignored", "before\n```go\nfunc main() {}\n```\nafter", 2},
		{"rule ignored", "above\n---\nbelow", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countWords(tt.markdown))
		})
	}
}
