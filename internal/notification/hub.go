// Package notification delivers folder change events to in-process
// subscribers and to other processes through Redis.
package notification

import (
	"log/slog"
	"sync"

	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
)

// DefaultBufferSize is the per-subscriber channel capacity
const DefaultBufferSize = 64

// Hub fans notifications out to subscribers. A subscriber whose buffer is
// full misses the notification; Notify never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int]chan models.Notification
	nextID      int
	bufferSize  int
	logger      *slog.Logger
}

var _ folderSvc.Notifier = (*Hub)(nil)

// NewHub creates a hub. bufferSize <= 0 uses DefaultBufferSize.
func NewHub(bufferSize int, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subscribers: make(map[int]chan models.Notification),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscribe registers a subscriber. The returned function unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan models.Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan models.Notification, h.bufferSize)
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Notify delivers n to every subscriber with room in its buffer
func (h *Hub) Notify(n models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- n:
		default:
			h.logger.Warn("dropping notification for slow subscriber", "subscriber", id, "kind", n.Kind, "id", n.ID)
		}
	}
}

// Multi sends every notification to each of its notifiers in order
type Multi []folderSvc.Notifier

var _ folderSvc.Notifier = Multi(nil)

// Notify implements folderSvc.Notifier
func (m Multi) Notify(n models.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}
