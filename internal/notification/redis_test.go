package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	models "folio/internal/domain/models/folder"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPublisher(t *testing.T) (*RedisPublisher, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	publisher, err := NewRedisPublisher("redis://"+s.Addr(), "test", testLogger())
	require.NoError(t, err)
	return publisher, s
}

func TestRedisPublisher_Publishes(t *testing.T) {
	publisher, s := setupPublisher(t)
	ctx := context.Background()

	subscriber := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer subscriber.Close()
	sub := subscriber.Subscribe(ctx, publisher.Channel(models.DidMoveViewToTrash))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher.Notify(models.Notification{
		ID:      "view-1",
		Kind:    models.DidMoveViewToTrash,
		Payload: map[string]string{"view_id": "view-1"},
	})

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "test:folder:did_move_view_to_trash", msg.Channel)
		var got models.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "view-1", got.ID)
		assert.Equal(t, models.DidMoveViewToTrash, got.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}

	require.NoError(t, publisher.Close())
}

func TestRedisPublisher_History(t *testing.T) {
	publisher, s := setupPublisher(t)

	for _, id := range []string{"a", "b", "c"} {
		publisher.Notify(models.Notification{ID: id, Kind: models.DidUpdateView})
	}
	// Close drains the queue before returning
	require.NoError(t, publisher.Close())

	list, err := s.List("test:folder:history")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	reader := NewRedisPublisherWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}), "test", testLogger())
	defer reader.Close()

	history, err := reader.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].ID)
	assert.Equal(t, "b", history[1].ID)
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher("not-a-url://", "test", testLogger())
	assert.Error(t, err)
}

func TestRedisPublisher_NotifyAfterClose(t *testing.T) {
	publisher, s := setupPublisher(t)

	publisher.Notify(models.Notification{ID: "before", Kind: models.DidUpdateView})
	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	assert.NotPanics(t, func() {
		publisher.Notify(models.Notification{ID: "after", Kind: models.DidUpdateView})
	})

	list, err := s.List("test:folder:history")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
