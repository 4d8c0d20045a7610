package editor

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
)

// HasEditorBuffers is what application state must provide for editor components
// A missing buffer means an empty one
type HasEditorBuffers interface {
	EditorBuffer(id string) (Buffer, bool)
}

// OnBufferChangeFunc receives the new buffer; it is responsible for dispatching it to the store
type OnBufferChangeFunc func(store component.Dispatcher, id string, buf Buffer)

// Component binds an Engine to the buffer stored under its id
type Component[S HasEditorBuffers] struct {
	id       string
	engine   *Engine
	onChange OnBufferChangeFunc
}

// New creates an editor component
func New[S HasEditorBuffers](id string, cfg Config, onChange OnBufferChangeFunc) *Component[S] {
	return &Component[S]{
		id:       id,
		engine:   NewEngine(cfg),
		onChange: onChange,
	}
}

// NewShared creates an editor component behind a lock
func NewShared[S HasEditorBuffers](id string, cfg Config, onChange OnBufferChangeFunc) *component.Shared[S] {
	return component.NewShared[S](New[S](id, cfg, onChange))
}

func (c *Component[S]) ID() string {
	return c.id
}

// Engine returns the underlying engine
func (c *Component[S]) Engine() *Engine {
	return c.engine
}

func (c *Component[S]) Render(args component.ScopeArgs[S], current *layout.FlexBox, _ layout.SurfaceBounds) (*render.Pipeline, error) {
	return c.engine.Render(c.args(args), current)
}

func (c *Component[S]) HandleEvent(args component.ScopeArgs[S], ev tcell.Event) (component.EventPropagation, error) {
	switch resp := c.engine.ApplyEvent(c.args(args), ev).(type) {
	case Applied:
		if c.onChange != nil {
			c.onChange(args.Store, c.id, resp.Buffer)
		}
		if resp.Change == ChangeContent {
			return component.ConsumedRender, nil
		}
		return component.Consumed, nil
	case NotApplied:
		return component.Propagate, nil
	default:
		log.Printf("editor %s: unexpected response %T", c.id, resp)
		return component.Propagate, nil
	}
}

func (c *Component[S]) Reset() {
	c.engine.Reset()
}

// Buffer returns the component's buffer from state, empty when absent
func (c *Component[S]) Buffer(state S) Buffer {
	if buf, ok := state.EditorBuffer(c.id); ok {
		return buf
	}
	return NewBuffer("")
}

func (c *Component[S]) args(args component.ScopeArgs[S]) Args {
	focused := args.Registry != nil && args.Registry.Focus().Has(c.id)
	return Args{
		Buffer:  c.Buffer(args.State),
		Global:  args.Global,
		Focused: focused,
	}
}
