package folder

import (
	"sync"
)

// MutexFolder guards the optional folder of the current workspace. The folder
// reference never leaves the guard; callers work inside WithFolder closures.
type MutexFolder struct {
	mu     sync.Mutex
	folder *Folder
}

// Set replaces the guarded folder. A nil folder clears it.
func (m *MutexFolder) Set(f *Folder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folder = f
}

// IsSet reports whether a folder is loaded
func (m *MutexFolder) IsSet() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.folder != nil
}

// withFolder runs some with the folder under the lock, or returns none() when
// no folder is loaded
func withFolder[T any](m *MutexFolder, none func() T, some func(f *Folder) T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.folder == nil {
		return none()
	}
	return some(m.folder)
}
