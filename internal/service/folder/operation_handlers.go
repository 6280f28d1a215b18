package folder

import (
	"sync"

	"folio/internal/domain"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
)

// OperationHandlers routes view layouts to the handler owning their payload.
//
// Thread-safe for concurrent access.
type OperationHandlers struct {
	mu       sync.RWMutex
	handlers map[models.ViewLayout]folderSvc.FolderOperationHandler
}

// NewOperationHandlers creates an empty registry
func NewOperationHandlers() *OperationHandlers {
	return &OperationHandlers{
		handlers: make(map[models.ViewLayout]folderSvc.FolderOperationHandler),
	}
}

// Register associates the handler with each of the given layouts.
// A later registration for the same layout replaces the earlier one.
func (r *OperationHandlers) Register(handler folderSvc.FolderOperationHandler, layouts ...models.ViewLayout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, layout := range layouts {
		r.handlers[layout] = handler
	}
}

// Get returns the handler for the layout, or an UnknownLayoutError
func (r *OperationHandlers) Get(layout models.ViewLayout) (folderSvc.FolderOperationHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[layout]
	if !ok {
		return nil, &domain.UnknownLayoutError{Layout: string(layout)}
	}
	return handler, nil
}
