package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
)

type appState struct {
	buffers map[string]Buffer
}

func (s appState) EditorBuffer(id string) (Buffer, bool) {
	b, ok := s.buffers[id]
	return b, ok
}

type recordingStore struct {
	actions []any
}

func (r *recordingStore) Dispatch(action any) {
	r.actions = append(r.actions, action)
}

func TestComponentCallbackOnce(t *testing.T) {
	var calls []Buffer
	onChange := func(store component.Dispatcher, id string, buf Buffer) {
		calls = append(calls, buf)
		store.Dispatch(id)
	}
	c := New[appState]("notes", DefaultConfig(), onChange)
	reg := component.NewRegistry[appState]()
	reg.Put(c)

	store := &recordingStore{}
	args := component.ScopeArgs[appState]{
		State:    appState{buffers: map[string]Buffer{}},
		Store:    store,
		Registry: reg,
	}

	prop, err := reg.Route(args, tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if err != nil {
		t.Fatal(err)
	}
	if prop != component.ConsumedRender {
		t.Errorf("content change prop = %v", prop)
	}
	if len(calls) != 1 || calls[0].Value() != "a" {
		t.Fatalf("callback calls = %d", len(calls))
	}
	if len(store.actions) != 1 {
		t.Errorf("dispatches = %d", len(store.actions))
	}

	prop, err = reg.Route(args, tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	if err != nil {
		t.Fatal(err)
	}
	if prop != component.Propagate || len(calls) != 1 {
		t.Errorf("unrecognized key: prop=%v calls=%d", prop, len(calls))
	}
}

func TestComponentCaretMoveConsumed(t *testing.T) {
	calls := 0
	c := New[appState]("notes", DefaultConfig(), func(component.Dispatcher, string, Buffer) { calls++ })

	buf := NewBuffer("abc")
	args := component.ScopeArgs[appState]{State: appState{buffers: map[string]Buffer{"notes": buf}}}
	prop, err := c.HandleEvent(args, tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if err != nil {
		t.Fatal(err)
	}
	if prop != component.Consumed || calls != 1 {
		t.Errorf("prop=%v calls=%d", prop, calls)
	}
}

func TestComponentMissingBufferIsEmpty(t *testing.T) {
	c := New[appState]("x", DefaultConfig(), nil)
	if got := c.Buffer(appState{}); got.Value() != "" || got.LineCount() != 1 {
		t.Errorf("default buffer = %+v", got)
	}
	shared := NewShared[appState]("y", DefaultConfig(), nil)
	if shared.ID() != "y" {
		t.Errorf("shared id = %q", shared.ID())
	}
}
