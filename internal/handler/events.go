package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	models "folio/internal/domain/models/folder"
	"folio/internal/handler/sse"
	"folio/internal/httputil"

	"github.com/google/uuid"
)

// NotificationSubscriber hands out notification streams
type NotificationSubscriber interface {
	Subscribe() (<-chan models.Notification, func())
}

// EventsHandler streams folder notifications over Server-Sent Events
type EventsHandler struct {
	subscriber NotificationSubscriber
	config     *sse.Config
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(subscriber NotificationSubscriber, config *sse.Config, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		subscriber: subscriber,
		config:     config,
		logger:     logger,
	}
}

// Stream sends every notification as an SSE event named after its kind
// GET /api/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	clientID := uuid.NewString()
	events, unsubscribe := h.subscriber.Subscribe()
	defer unsubscribe()

	writer := sse.NewWriter(w, flusher, clientID)
	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	stopped := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	h.logger.Debug("SSE client connected", "client_id", clientID)
	defer h.logger.Debug("SSE client disconnected", "client_id", clientID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-stopped:
			return
		case n, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(n)
			if err != nil {
				h.logger.Error("failed to encode notification", "kind", n.Kind, "error", err)
				continue
			}
			if err := writer.WriteEvent(string(n.Kind), data); err != nil {
				h.logger.Warn("SSE write failed", "client_id", clientID, "error", err)
				return
			}
		}
	}
}
