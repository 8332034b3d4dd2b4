// internal/connection/registry.go
package connection

import "sync"

// Registry holds pre-lobby identity (display name, candidate photo set) keyed
// by connection id. It is intentionally dumb: no error for unknown ids,
// accessors return zero values. Validation of readiness-to-join lives in the
// lobby join path, which queries this registry.
type Registry struct {
	mu     sync.Mutex
	names  map[string]string
	images map[string][]string
}

// NewRegistry initializes an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		names:  make(map[string]string),
		images: make(map[string][]string),
	}
}

// SetName registers the display name for a connection.
func (r *Registry) SetName(connectionID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[connectionID] = name
}

// SetImages registers the candidate image set for a connection, replacing any
// previous set.
func (r *Registry) SetImages(connectionID string, images []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	imgs := make([]string, len(images))
	copy(imgs, images)
	r.images[connectionID] = imgs
}

// HasName reports whether a display name was registered for the connection.
func (r *Registry) HasName(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.names[connectionID]
	return ok
}

// HasImages reports whether a non-empty image set was registered.
func (r *Registry) HasImages(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images[connectionID]) > 0
}

// GetName returns the registered display name, or "".
func (r *Registry) GetName(connectionID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[connectionID]
}

// GetImages returns a copy of the registered image set, empty if none.
func (r *Registry) GetImages(connectionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	imgs := make([]string, len(r.images[connectionID]))
	copy(imgs, r.images[connectionID])
	return imgs
}

// Clear drops all registered state for a connection. Called on disconnect.
func (r *Registry) Clear(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, connectionID)
	delete(r.images, connectionID)
}
