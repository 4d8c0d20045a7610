// Package app runs the terminal event loop: it routes input through the
// component registry, re-renders the layout on change and paints the result
// to a tcell screen.
package app

import (
	"context"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/audio"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/store"
	"github.com/lixenwraith/flexterm/style"
)

// LayoutFunc describes one frame: open boxes on s and render components into them
// It runs under the store's read lock and must not dispatch
type LayoutFunc[S any] func(s *layout.Surface, args component.ScopeArgs[S]) error

// KeyHandler sees keys no component consumed
type KeyHandler[S any] func(a *App[S], args component.ScopeArgs[S], ev *tcell.EventKey) (component.EventPropagation, error)

// Options are the optional collaborators of an App
type Options[S any] struct {
	Stylesheet *style.Stylesheet
	Handler    KeyHandler[S]
	Bell       *audio.Bell // rung for keys nothing handled
	Dir        geom.Direction
}

// App owns the screen and drives the event loop
type App[S any] struct {
	screen   tcell.Screen
	store    *store.Store[S]
	registry *component.Registry[S]
	global   *component.GlobalData
	layout   LayoutFunc[S]
	opts     Options[S]

	frame *render.Pipeline // last painted frame

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates an app over an initialized screen
func New[S any](screen tcell.Screen, st *store.Store[S], reg *component.Registry[S], lay LayoutFunc[S], opts Options[S]) *App[S] {
	w, h := screen.Size()
	return &App[S]{
		screen:   screen,
		store:    st,
		registry: reg,
		global:   component.NewGlobalData(geom.Sz(w, h)),
		layout:   lay,
		opts:     opts,
		quit:     make(chan struct{}),
	}
}

// Store returns the app's store
func (a *App[S]) Store() *store.Store[S] {
	return a.store
}

// Registry returns the app's component registry
func (a *App[S]) Registry() *component.Registry[S] {
	return a.registry
}

// Global returns the shared global data
func (a *App[S]) Global() *component.GlobalData {
	return a.global
}

// Frame returns the last successfully painted pipeline
func (a *App[S]) Frame() *render.Pipeline {
	return a.frame
}

// Quit ends Run; safe to call more than once and from any goroutine
func (a *App[S]) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Ring plays a feedback sound when a bell is configured
func (a *App[S]) Ring(s audio.Sound) {
	a.opts.Bell.Ring(s)
}

// Run processes events until Quit or ctx is done
// The screen is finalized if a component panics
func (a *App[S]) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			a.screen.Fini()
			panic(r)
		}
	}()

	events := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := a.RenderFrame(); err != nil {
		log.Printf("app: initial render: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.quit:
			return nil
		case ev := <-events:
			if a.HandleEvent(ev) {
				a.renderLogged()
			}
		case <-a.store.Changes():
			a.renderLogged()
		}
	}
}

// HandleEvent processes one event and reports whether a render is due
func (a *App[S]) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.global.SetWindowSize(geom.Sz(w, h))
		a.screen.Sync()
		return true

	case *tcell.EventKey:
		args := a.scopeArgs(a.store.State())
		prop, err := a.registry.Route(args, ev)
		if err != nil {
			log.Printf("app: route %s: %v", ev.Name(), err)
		}
		if !prop.IsConsumed() && a.opts.Handler != nil {
			prop, err = a.opts.Handler(a, args, ev)
			if err != nil {
				log.Printf("app: handler %s: %v", ev.Name(), err)
			}
		}
		if !prop.IsConsumed() {
			log.Printf("app: unhandled key %s", ev.Name())
			a.opts.Bell.Ring(audio.SoundReject)
		}
		return prop == component.ConsumedRender

	default:
		log.Printf("app: dropped %T", ev)
		return false
	}
}

// RenderFrame lays out and paints a frame under the store's read lock
// On error nothing is painted and the previous frame stays on screen
func (a *App[S]) RenderFrame() error {
	var (
		p   *render.Pipeline
		err error
	)
	a.store.View(func(state S) {
		args := a.scopeArgs(state)
		props := layout.SurfaceProps{Size: args.WindowSize, Dir: a.opts.Dir}
		p, err = layout.Run(a.opts.Stylesheet, props, func(s *layout.Surface) error {
			return a.layout(s, args)
		})
	})
	if err != nil {
		return err
	}

	a.screen.Clear()
	render.Paint(a.screen, p)
	a.screen.Show()
	a.frame = p
	return nil
}

func (a *App[S]) renderLogged() {
	if err := a.RenderFrame(); err != nil {
		log.Printf("app: render: %v", err)
	}
}

func (a *App[S]) scopeArgs(state S) component.ScopeArgs[S] {
	return component.ScopeArgs[S]{
		State:      state,
		Store:      a.store,
		Global:     a.global,
		Registry:   a.registry,
		WindowSize: a.global.WindowSize(),
	}
}
