package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"

	"github.com/redis/go-redis/v9"
)

const (
	// HistoryLength is how many recent notifications are kept in the history list
	HistoryLength = 100

	publishTimeout = 2 * time.Second
)

// RedisPublisher publishes notifications as JSON on "<prefix>:folder:<kind>"
// and keeps the newest ones in the "<prefix>:folder:history" list. Publishing
// happens on a background goroutine; when its queue is full notifications
// are dropped.
type RedisPublisher struct {
	client *redis.Client
	prefix string
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan models.Notification
	done   chan struct{}
}

var _ folderSvc.Notifier = (*RedisPublisher)(nil)

// NewRedisPublisher connects to redisURL and starts the publishing goroutine
func NewRedisPublisher(redisURL, prefix string, logger *slog.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisPublisherWithClient(client, prefix, logger), nil
}

// NewRedisPublisherWithClient creates a publisher from an existing client
func NewRedisPublisherWithClient(client *redis.Client, prefix string, logger *slog.Logger) *RedisPublisher {
	p := &RedisPublisher{
		client: client,
		prefix: prefix,
		logger: logger,
		queue:  make(chan models.Notification, DefaultBufferSize),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Channel returns the pub/sub channel notifications of kind are published on
func (p *RedisPublisher) Channel(kind models.NotificationKind) string {
	return fmt.Sprintf("%s:folder:%s", p.prefix, kind)
}

// HistoryKey returns the list holding recent notifications
func (p *RedisPublisher) HistoryKey() string {
	return p.prefix + ":folder:history"
}

// Notify queues n for publishing. Notifications sent after Close are dropped.
func (p *RedisPublisher) Notify(n models.Notification) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Debug("redis publisher closed, dropping notification", "kind", n.Kind, "id", n.ID)
		return
	}
	select {
	case p.queue <- n:
	default:
		p.logger.Warn("redis notification queue full, dropping", "kind", n.Kind, "id", n.ID)
	}
}

func (p *RedisPublisher) run() {
	defer close(p.done)
	for n := range p.queue {
		if err := p.publish(n); err != nil {
			p.logger.Error("failed to publish notification", "kind", n.Kind, "id", n.ID, "error", err)
		}
	}
}

func (p *RedisPublisher) publish(n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	pipe := p.client.TxPipeline()
	pipe.Publish(ctx, p.Channel(n.Kind), data)
	pipe.LPush(ctx, p.HistoryKey(), data)
	pipe.LTrim(ctx, p.HistoryKey(), 0, HistoryLength-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// History returns up to limit recent notifications, newest first
func (p *RedisPublisher) History(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > HistoryLength {
		limit = HistoryLength
	}
	raw, err := p.client.LRange(ctx, p.HistoryKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notification history: %w", err)
	}

	notifications := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// Close drains the queue and closes the Redis connection
func (p *RedisPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.client.Close()
}
