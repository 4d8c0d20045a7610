package component

import (
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/layout"
)

// Registry holds components by id and routes input to the focused one
type Registry[S any] struct {
	mu         sync.RWMutex
	components map[string]Component[S]
	order      []string
	focus      Focus
}

// NewRegistry creates an empty registry
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{components: make(map[string]Component[S])}
}

// Put registers c, replacing any component with the same id
// The first registered component receives normal focus
func (r *Registry[S]) Put(c Component[S]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := c.ID()
	if _, ok := r.components[id]; !ok {
		r.order = append(r.order, id)
	}
	r.components[id] = c
	if r.focus.ID() == "" && focusable(c) {
		r.focus.SetID(id)
	}
}

// Get looks up a component by id
func (r *Registry[S]) Get(id string) (Component[S], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[id]
	return c, ok
}

// Remove unregisters id and drops it from focus
func (r *Registry[S]) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.components[id]; !ok {
		return
	}
	delete(r.components, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	r.focus.clearID(id)
}

// IDs returns registered ids in registration order
func (r *Registry[S]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Focus returns the focus state
func (r *Registry[S]) Focus() *Focus {
	return &r.focus
}

// FocusNext moves normal focus to the next focusable component, wrapping
func (r *Registry[S]) FocusNext() string {
	return r.cycle(1)
}

// FocusPrev moves normal focus to the previous focusable component, wrapping
func (r *Registry[S]) FocusPrev() string {
	return r.cycle(-1)
}

func (r *Registry[S]) cycle(step int) string {
	r.mu.RLock()
	var ids []string
	for _, id := range r.order {
		if focusable(r.components[id]) {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	if len(ids) == 0 {
		return r.focus.ID()
	}
	cur := slices.Index(ids, r.focus.ID())
	var next int
	if cur < 0 {
		if step < 0 {
			next = len(ids) - 1
		}
	} else {
		next = (cur + step + len(ids)) % len(ids)
	}
	r.focus.SetID(ids[next])
	return ids[next]
}

// Route delivers ev to the modal component if one is set, else the focused one
// With nothing focused the event is dropped and Propagate returned
func (r *Registry[S]) Route(args ScopeArgs[S], ev tcell.Event) (EventPropagation, error) {
	id, ok := r.focus.Routed()
	if !ok {
		log.Printf("registry: no focus, dropping %T", ev)
		return Propagate, nil
	}

	// lookup under lock, call without it so handlers may touch the registry
	c, ok := r.Get(id)
	if !ok {
		return Propagate, fmt.Errorf("route to %q: %w", id, ErrUnknownComponent)
	}
	prop, err := c.HandleEvent(args, ev)
	if err != nil {
		return Propagate, fmt.Errorf("handle event in %q: %w", id, err)
	}
	return prop, nil
}

// RenderInto renders component id into the surface's current box
// The component's pipeline is appended only when rendering succeeds
func (r *Registry[S]) RenderInto(s *layout.Surface, id string, args ScopeArgs[S]) error {
	c, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("render %q: %w", id, ErrUnknownComponent)
	}
	p, err := c.Render(args, s.Current(), s.Bounds())
	if err != nil {
		return fmt.Errorf("render %q: %w", id, err)
	}
	s.Render(p)
	return nil
}

// ResetAll resets every registered component
func (r *Registry[S]) ResetAll() {
	r.mu.RLock()
	cs := make([]Component[S], 0, len(r.order))
	for _, id := range r.order {
		cs = append(cs, r.components[id])
	}
	r.mu.RUnlock()
	for _, c := range cs {
		c.Reset()
	}
}

func focusable[S any](c Component[S]) bool {
	if f, ok := c.(Focusable); ok {
		return f.Focusable()
	}
	return true
}
