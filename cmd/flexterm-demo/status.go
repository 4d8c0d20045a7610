package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
)

// statusBar shows the status message and the focused pane
type statusBar struct{}

func (statusBar) ID() string { return statusID }

func (statusBar) Focusable() bool { return false }

func (statusBar) Render(args component.ScopeArgs[State], current *layout.FlexBox, _ layout.SurfaceBounds) (*render.Pipeline, error) {
	if current == nil || current.ContentSize.IsEmpty() {
		return nil, fmt.Errorf("status: %w", component.ErrEngineRender)
	}
	st := current.Style()
	if st.IsZero() {
		st = style.Style{Reverse: true}
	}
	ts := st.TcellStyle()

	focus := "-"
	if id, ok := args.Registry.Focus().Routed(); ok {
		focus = id
	}
	w := current.ContentSize.Width
	text := render.Truncate(fmt.Sprintf(" [%s] %s", focus, args.State.Status), w)

	p := render.NewPipeline()
	p.Push(render.ZNormal,
		render.Fill{Rect: geom.Rect{Pos: current.ContentOrigin, Size: geom.Sz(w, 1)}, Style: ts},
		render.Text{Pos: current.ContentOrigin, Text: text, Style: ts},
	)
	return p, nil
}

func (statusBar) HandleEvent(component.ScopeArgs[State], tcell.Event) (component.EventPropagation, error) {
	return component.Propagate, nil
}

func (statusBar) Reset() {}
