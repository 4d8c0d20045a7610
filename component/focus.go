package component

import (
	"fmt"
	"log"
	"sync"
)

// Focus tracks the normal focus id and an optional modal id that overrides it
// It has its own lock so a component can change focus while the registry routes to it
type Focus struct {
	mu    sync.RWMutex
	id    string
	modal string
}

// SetID moves normal focus; empty clears it
func (f *Focus) SetID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
}

// ID returns the normal focus id
func (f *Focus) ID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.id
}

// SetModalID routes input to id until ResetModalID
// Setting the already active modal is a no-op
func (f *Focus) SetModalID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.modal != "" && f.modal != id {
		return fmt.Errorf("open %q over %q: %w", id, f.modal, ErrModalActive)
	}
	f.modal = id
	return nil
}

// ResetModalID clears modal focus, restoring routing to the normal focus id
func (f *Focus) ResetModalID() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.modal != "" {
		log.Printf("focus: modal %q closed, routing back to %q", f.modal, f.id)
	}
	f.modal = ""
}

// ModalID returns the modal id, if any
func (f *Focus) ModalID() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.modal, f.modal != ""
}

// IsModal reports whether a modal is active
func (f *Focus) IsModal() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.modal != ""
}

// Routed returns the id input goes to: the modal id if set, else the normal id
func (f *Focus) Routed() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.modal != "" {
		return f.modal, true
	}
	return f.id, f.id != ""
}

// Has reports whether id currently receives input
func (f *Focus) Has(id string) bool {
	routed, ok := f.Routed()
	return ok && routed == id
}

// clearID drops id from both slots
func (f *Focus) clearID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.id == id {
		f.id = ""
	}
	if f.modal == id {
		f.modal = ""
	}
}
