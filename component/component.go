// Package component defines the renderable, event-handling unit of the
// framework and the registry that routes input to whichever component holds
// focus, with modal focus overriding normal focus while a dialog is open.
package component

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
)

var (
	// ErrEngineRender reports a render precondition failure, such as a zero-area box
	ErrEngineRender = errors.New("engine render failure")

	// ErrUnknownComponent reports a lookup of an unregistered id
	ErrUnknownComponent = errors.New("unknown component")

	// ErrModalActive reports an attempt to open a second modal
	ErrModalActive = errors.New("another modal is active")
)

// EventPropagation tells the caller what happened to an event
type EventPropagation uint8

const (
	Propagate      EventPropagation = iota // not consumed; try another handler
	Consumed                               // consumed, frame unchanged
	ConsumedRender                         // consumed, frame must be redrawn
)

func (p EventPropagation) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case Consumed:
		return "consumed"
	case ConsumedRender:
		return "consumed-render"
	}
	return "unknown"
}

// IsConsumed reports whether the event was handled
func (p EventPropagation) IsConsumed() bool {
	return p != Propagate
}

// Dispatcher is the application store handle passed through to callbacks
// Nothing in this package calls Dispatch
type Dispatcher interface {
	Dispatch(action any)
}

// ScopeArgs carries everything a component needs for one render or event call
type ScopeArgs[S any] struct {
	State      S
	Store      Dispatcher
	Global     *GlobalData
	Registry   *Registry[S]
	WindowSize geom.Size
}

// Component is a renderable unit with a stable id, generic over app state S
type Component[S any] interface {
	ID() string
	// Render draws into current; overlays may ignore it and use bounds
	Render(args ScopeArgs[S], current *layout.FlexBox, bounds layout.SurfaceBounds) (*render.Pipeline, error)
	HandleEvent(args ScopeArgs[S], ev tcell.Event) (EventPropagation, error)
	// Reset drops runtime state held by the component's engine
	Reset()
}

// Focusable lets a component opt out of Tab cycling
type Focusable interface {
	Focusable() bool
}

// Shared serializes access to a component
// Components returned by NewShared constructors are wrapped in it
type Shared[S any] struct {
	mu    sync.Mutex
	inner Component[S]
}

// NewShared wraps c
func NewShared[S any](c Component[S]) *Shared[S] {
	return &Shared[S]{inner: c}
}

func (s *Shared[S]) ID() string {
	return s.inner.ID()
}

func (s *Shared[S]) Render(args ScopeArgs[S], current *layout.FlexBox, bounds layout.SurfaceBounds) (*render.Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Render(args, current, bounds)
}

func (s *Shared[S]) HandleEvent(args ScopeArgs[S], ev tcell.Event) (EventPropagation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.HandleEvent(args, ev)
}

func (s *Shared[S]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Reset()
}

// Focusable forwards to the wrapped component; true when it does not say
func (s *Shared[S]) Focusable() bool {
	if f, ok := s.inner.(Focusable); ok {
		return f.Focusable()
	}
	return true
}

// Unwrap returns the wrapped component
// Callers must not use it concurrently with the wrapper
func (s *Shared[S]) Unwrap() Component[S] {
	return s.inner
}
