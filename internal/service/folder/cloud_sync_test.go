package folder

import (
	"context"
	"errors"
	"testing"

	"folio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	saved     int
	snapshots []string
	err       error
}

func (w *recordingWriter) SaveFolderDocState(ctx context.Context, workspaceID string, uid int64, state []byte) error {
	w.saved++
	return w.err
}

func (w *recordingWriter) SaveWithSnapshot(ctx context.Context, workspaceID string, uid int64, desc string, state []byte) error {
	w.saved++
	w.snapshots = append(w.snapshots, string(state))
	return w.err
}

func TestCloudSyncStore(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors saves and snapshots periodically", func(t *testing.T) {
		local := newMemStateStore()
		writer := &recordingWriter{}
		store := NewCloudSyncStore(local, writer, 2, testLogger())

		for _, state := range []string{"s1", "s2", "s3", "s4"} {
			require.NoError(t, store.SaveFolderState(ctx, 1, "ws", []byte(state)))
		}

		assert.Equal(t, 4, writer.saved)
		assert.Equal(t, []string{"s2", "s4"}, writer.snapshots)

		state, err := store.LoadFolderState(ctx, 1, "ws")
		require.NoError(t, err)
		assert.Equal(t, []byte("s4"), state)
	})

	t.Run("cloud failure keeps the local save", func(t *testing.T) {
		local := newMemStateStore()
		store := NewCloudSyncStore(local, &recordingWriter{err: errors.New("offline")}, 0, testLogger())

		require.NoError(t, store.SaveFolderState(ctx, 1, "ws", []byte("state")))
		state, err := local.LoadFolderState(ctx, 1, "ws")
		require.NoError(t, err)
		assert.Equal(t, []byte("state"), state)
	})
}

func TestOfflineCloud(t *testing.T) {
	ctx := context.Background()
	cloud := OfflineCloud{}

	_, err := cloud.GetFolderDocState(ctx, "ws", 1, "folder", "ws")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	workspace, err := cloud.CreateWorkspace(ctx, 7, "Side project")
	require.NoError(t, err)
	assert.NotEmpty(t, workspace.ID)
	assert.Equal(t, "Side project", workspace.Name)
	require.NotNil(t, workspace.CreatedBy)
	assert.Equal(t, int64(7), *workspace.CreatedBy)

	snapshots, err := cloud.GetFolderSnapshots(ctx, "ws", 10)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
