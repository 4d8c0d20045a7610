package main

import (
	"maps"

	"github.com/lixenwraith/flexterm/dialog"
	"github.com/lixenwraith/flexterm/editor"
)

// State is the demo's application state; reducers copy maps before writing
type State struct {
	Editors map[string]editor.Buffer
	Dialogs map[string]dialog.Buffer
	Status  string
}

func (s State) EditorBuffer(id string) (editor.Buffer, bool) {
	b, ok := s.Editors[id]
	return b, ok
}

func (s State) DialogBuffer(id string) (dialog.Buffer, bool) {
	b, ok := s.Dialogs[id]
	return b, ok
}

// Actions
type (
	SetEditor struct {
		ID     string
		Buffer editor.Buffer
	}
	SetDialog struct {
		ID     string
		Buffer dialog.Buffer
	}
	SetStatus string
)

func newState() State {
	return State{
		Editors: map[string]editor.Buffer{
			leftID:  editor.NewBuffer("Ctrl+O open a file, Tab switch pane, Ctrl+Q quit\n"),
			rightID: editor.NewBuffer(""),
		},
		Dialogs: map[string]dialog.Buffer{},
		Status:  "ready",
	}
}

func reduce(prev State, action any) State {
	switch a := action.(type) {
	case SetEditor:
		prev.Editors = with(prev.Editors, a.ID, a.Buffer)
	case SetDialog:
		prev.Dialogs = with(prev.Dialogs, a.ID, a.Buffer)
	case SetStatus:
		prev.Status = string(a)
	}
	return prev
}

// with returns a copy of m with k set to v
func with[V any](m map[string]V, k string, v V) map[string]V {
	out := make(map[string]V, len(m)+1)
	maps.Copy(out, m)
	out[k] = v
	return out
}
