package dialog

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
)

// HasDialogBuffers is what application state must provide for dialog components
// A missing buffer means an inactive dialog
type HasDialogBuffers interface {
	DialogBuffer(id string) (Buffer, bool)
}

// OnPressFunc runs after the dialog resolved and modal focus was released
type OnPressFunc func(store component.Dispatcher, id string, choice Choice)

// OnEditorChangeFunc receives the dialog buffer after its input changed
type OnEditorChangeFunc func(store component.Dispatcher, id string, buf Buffer)

// Component binds an Engine to the dialog buffer stored under its id
type Component[S HasDialogBuffers] struct {
	id             string
	engine         *Engine
	onPress        OnPressFunc
	onEditorChange OnEditorChangeFunc
}

// New creates a dialog component
func New[S HasDialogBuffers](id string, cfg Config, onPress OnPressFunc, onEditorChange OnEditorChangeFunc) *Component[S] {
	return &Component[S]{
		id:             id,
		engine:         NewEngine(cfg),
		onPress:        onPress,
		onEditorChange: onEditorChange,
	}
}

// NewShared creates a dialog component behind a lock
func NewShared[S HasDialogBuffers](id string, cfg Config, onPress OnPressFunc, onEditorChange OnEditorChangeFunc) *component.Shared[S] {
	return component.NewShared[S](New[S](id, cfg, onPress, onEditorChange))
}

func (c *Component[S]) ID() string {
	return c.id
}

// Focusable keeps dialogs out of Tab cycling; they take input through modal focus
func (c *Component[S]) Focusable() bool {
	return false
}

// Engine returns the underlying engine
func (c *Component[S]) Engine() *Engine {
	return c.engine
}

// Open resets the engine and routes input to this dialog
// The caller still dispatches the active buffer to its store
func (c *Component[S]) Open(reg *component.Registry[S]) error {
	if err := reg.Focus().SetModalID(c.id); err != nil {
		return err
	}
	c.engine.Reset()
	return nil
}

// Render ignores current and overlays the dialog on the surface bounds
func (c *Component[S]) Render(args component.ScopeArgs[S], _ *layout.FlexBox, bounds layout.SurfaceBounds) (*render.Pipeline, error) {
	return c.engine.Render(c.args(args), bounds)
}

func (c *Component[S]) HandleEvent(args component.ScopeArgs[S], ev tcell.Event) (component.EventPropagation, error) {
	switch resp := c.engine.ApplyEvent(c.args(args), ev).(type) {
	case DialogChoice:
		// focus is restored before the callback so anything it triggers sees normal routing
		if args.Registry != nil {
			if id, ok := args.Registry.Focus().ModalID(); ok && id == c.id {
				args.Registry.Focus().ResetModalID()
			}
		}
		log.Printf("dialog %s: %s %q", c.id, resp.Choice.Kind, resp.Choice.Text)
		if c.onPress != nil {
			c.onPress(args.Store, c.id, resp.Choice)
		}
		return component.ConsumedRender, nil
	case UpdateEditorBuffer:
		if c.onEditorChange != nil {
			c.onEditorChange(args.Store, c.id, resp.Buffer)
		}
		return component.Consumed, nil
	case SelectScrollResultsPanel:
		return component.ConsumedRender, nil
	case NoMatch:
		return component.Propagate, nil
	default:
		log.Printf("dialog %s: unexpected response %T", c.id, resp)
		return component.Propagate, nil
	}
}

func (c *Component[S]) Reset() {
	c.engine.Reset()
}

// Buffer returns the component's buffer from state, inactive when absent
func (c *Component[S]) Buffer(state S) Buffer {
	if buf, ok := state.DialogBuffer(c.id); ok {
		return buf
	}
	return Buffer{}
}

func (c *Component[S]) args(args component.ScopeArgs[S]) Args {
	focused := args.Registry != nil && args.Registry.Focus().Has(c.id)
	return Args{
		Buffer:  c.Buffer(args.State),
		Global:  args.Global,
		Focused: focused,
	}
}
