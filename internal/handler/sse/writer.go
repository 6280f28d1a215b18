package sse

import (
	"fmt"
	"net/http"
	"sync"
)

// Writer serializes SSE frames to one client. Events and keep-alive pings
// come from different goroutines, so every write holds the mutex.
type Writer struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	clientID string
	seq      int64
}

// NewWriter creates a writer for one SSE client
func NewWriter(w http.ResponseWriter, flusher http.Flusher, clientID string) *Writer {
	return &Writer{
		w:        w,
		flusher:  flusher,
		clientID: clientID,
	}
}

// WriteEvent writes a named event with a monotonically increasing id
func (s *Writer) WriteEvent(event string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, data); err != nil {
		return fmt.Errorf("write event to %s: %w", s.clientID, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment (: keepalive) and flushes.
// Lines starting with ':' are ignored by clients.
func (s *Writer) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive failed: %w", err)
	}
	s.flusher.Flush()

	// zero-byte write surfaces a closed connection
	if _, err := s.w.Write([]byte{}); err != nil {
		return fmt.Errorf("connection closed: %w", err)
	}
	return nil
}
