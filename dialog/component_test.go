package dialog

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/editor"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
)

type appState struct {
	dialogs map[string]Buffer
	editors map[string]editor.Buffer
}

func (s appState) DialogBuffer(id string) (Buffer, bool) {
	b, ok := s.dialogs[id]
	return b, ok
}

func (s appState) EditorBuffer(id string) (editor.Buffer, bool) {
	b, ok := s.editors[id]
	return b, ok
}

type recordingStore struct {
	actions []any
}

func (r *recordingStore) Dispatch(action any) {
	r.actions = append(r.actions, action)
}

func TestChoiceReleasesModalBeforeCallback(t *testing.T) {
	reg := component.NewRegistry[appState]()
	edits := 0
	reg.Put(editor.New[appState]("notes", editor.DefaultConfig(), func(component.Dispatcher, string, editor.Buffer) { edits++ }))

	var modalDuringPress bool
	var got Choice
	dlg := New[appState]("open", DefaultConfig(), func(store component.Dispatcher, id string, c Choice) {
		modalDuringPress = reg.Focus().IsModal()
		got = c
		store.Dispatch(id)
	}, nil)
	reg.Put(dlg)

	if err := dlg.Open(reg); err != nil {
		t.Fatal(err)
	}
	store := &recordingStore{}
	args := component.ScopeArgs[appState]{
		State: appState{
			dialogs: map[string]Buffer{"open": NewBuffer("Open", []string{"one", "two"})},
			editors: map[string]editor.Buffer{},
		},
		Store:    store,
		Registry: reg,
	}

	prop, err := reg.Route(args, key(tcell.KeyDown))
	if err != nil || prop != component.ConsumedRender {
		t.Fatalf("down: %v %v", prop, err)
	}
	prop, err = reg.Route(args, key(tcell.KeyEnter))
	if err != nil || prop != component.ConsumedRender {
		t.Fatalf("enter: %v %v", prop, err)
	}
	if modalDuringPress {
		t.Error("modal still set during press callback")
	}
	if got.Kind != ChoiceYes || got.Text != "two" || len(store.actions) != 1 {
		t.Errorf("choice = %+v, dispatches = %d", got, len(store.actions))
	}

	if _, err := reg.Route(args, runeKey('x')); err != nil {
		t.Fatal(err)
	}
	if edits != 1 {
		t.Errorf("editor edits after dialog closed = %d, want 1", edits)
	}
}

func TestEditorChangeCallback(t *testing.T) {
	var updates []Buffer
	c := New[appState]("find", DefaultConfig(), nil, func(_ component.Dispatcher, _ string, buf Buffer) {
		updates = append(updates, buf)
	})
	args := component.ScopeArgs[appState]{
		State: appState{dialogs: map[string]Buffer{"find": NewBuffer("Find", nil)}},
	}

	prop, err := c.HandleEvent(args, runeKey('q'))
	if err != nil || prop != component.Consumed {
		t.Fatalf("typing: %v %v", prop, err)
	}
	if len(updates) != 1 || updates[0].Input() != "q" {
		t.Errorf("updates = %+v", updates)
	}

	prop, _ = c.HandleEvent(args, key(tcell.KeyF5))
	if prop != component.Propagate || len(updates) != 1 {
		t.Errorf("unrecognized key: prop=%v updates=%d", prop, len(updates))
	}
}

func TestOpenWhileAnotherModal(t *testing.T) {
	reg := component.NewRegistry[appState]()
	a := New[appState]("a", DefaultConfig(), nil, nil)
	b := New[appState]("b", DefaultConfig(), nil, nil)
	reg.Put(a)
	reg.Put(b)

	if err := a.Open(reg); err != nil {
		t.Fatal(err)
	}
	if err := b.Open(reg); err == nil {
		t.Error("second modal opened over the first")
	}
	if id, _ := reg.Focus().ModalID(); id != "a" {
		t.Errorf("modal = %q", id)
	}
}

func TestComponentRenderIgnoresBox(t *testing.T) {
	c := New[appState]("d", DefaultConfig(), nil, nil)
	args := component.ScopeArgs[appState]{
		State: appState{dialogs: map[string]Buffer{"d": NewBuffer("T", []string{"x"})}},
	}
	b := layout.SurfaceBounds{Size: geom.Sz(30, 10)}

	p, err := c.Render(args, nil, b)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() == 0 {
		t.Error("active dialog drew nothing")
	}
	if c.Focusable() {
		t.Error("dialog joined focus cycle")
	}
	if got := c.Buffer(appState{}); got.Active {
		t.Error("missing buffer reported active")
	}
}
