package timeline

import "sync"

// Handle guards shared access to one Timeline. The editing session is the
// single writer; the renderer and playback bridge are readers. Mutations
// hold the write lock for the duration of a single edit, render passes
// hold the read lock for the duration of a single query.
type Handle struct {
	mu sync.RWMutex
	tl *Timeline
}

// NewHandle wraps a timeline. A nil timeline gets the session defaults.
func NewHandle(tl *Timeline) *Handle {
	if tl == nil {
		tl = New()
	}
	return &Handle{tl: tl}
}

// View runs fn with shared read access.
func (h *Handle) View(fn func(*Timeline)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(h.tl)
}

// Update runs fn with exclusive write access.
func (h *Handle) Update(fn func(*Timeline)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.tl)
}

// Snapshot returns a deep copy taken under the read lock, suitable for
// persistence.
func (h *Handle) Snapshot() *Timeline {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tl.Clone()
}

// Replace swaps in a different timeline, used when a project is loaded.
func (h *Handle) Replace(tl *Timeline) {
	if tl == nil {
		tl = New()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tl = tl
}
