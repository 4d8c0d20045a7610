// Package dialog implements a modal prompt engine with an optional, fuzzy
// ranked result list, and the component shim that binds it to application
// state and modal focus.
package dialog

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/editor"
	"github.com/lixenwraith/flexterm/fuzzy"
	"github.com/lixenwraith/flexterm/layout"
)

// Args is the input to one engine call
type Args struct {
	Buffer  Buffer
	Global  *component.GlobalData
	Focused bool
}

// Engine holds runtime state only: selection, scroll, last bounds and the input editor
type Engine struct {
	cfg   Config
	input *editor.Engine

	selected int
	scroll   int
	rows     int // result rows shown by the last render
	bounds   layout.SurfaceBounds
}

// NewEngine creates a dialog engine
func NewEngine(cfg Config) *Engine {
	cfg = cfg.normalized()
	return &Engine{
		cfg: cfg,
		input: editor.NewEngine(editor.Config{
			LineMode: editor.SingleLine,
			EditMode: editor.ReadWrite,
		}),
		rows: cfg.MaxVisibleResults,
	}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Selected returns the selected result row
func (e *Engine) Selected() int {
	return e.selected
}

// Bounds returns the surface bounds of the last render
func (e *Engine) Bounds() layout.SurfaceBounds {
	return e.bounds
}

// Reset clears selection, scroll and input editor state
func (e *Engine) Reset() {
	e.selected = 0
	e.scroll = 0
	e.rows = e.cfg.MaxVisibleResults
	e.bounds = layout.SurfaceBounds{}
	e.input.Reset()
}

// Matches returns the results to show for buf, ranked when filtering is on
func (e *Engine) Matches(buf Buffer) []fuzzy.Match {
	if e.cfg.FilterResults {
		return fuzzy.Filter(fuzzy.ParseQuery(buf.Input()), buf.Results)
	}
	out := make([]fuzzy.Match, len(buf.Results))
	for i, r := range buf.Results {
		out[i] = fuzzy.Match{Index: i, Text: r}
	}
	return out
}

// ApplyEvent interprets ev against an active dialog
func (e *Engine) ApplyEvent(args Args, ev tcell.Event) ApplyResponse {
	key, ok := ev.(*tcell.EventKey)
	if !ok || !args.Buffer.Active {
		return NoMatch{}
	}
	buf := args.Buffer
	auto := e.cfg.Mode == ModeAutocomplete

	switch key.Key() {
	case tcell.KeyEnter:
		text := buf.Input()
		if auto {
			if ms := e.Matches(buf); len(ms) > 0 {
				text = ms[min(e.selected, len(ms)-1)].Text
			}
		}
		e.selected, e.scroll = 0, 0
		return DialogChoice{Choice: Choice{Kind: ChoiceYes, Text: text}}
	case tcell.KeyEscape:
		e.selected, e.scroll = 0, 0
		return DialogChoice{Choice: Choice{Kind: ChoiceNo, Text: buf.Input()}}
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyPgUp, tcell.KeyPgDn:
		if !auto {
			return NoMatch{}
		}
		if e.move(key.Key(), len(e.Matches(buf))) {
			return SelectScrollResultsPanel{}
		}
		return NoMatch{}
	}

	resp := e.input.ApplyEvent(editor.Args{Buffer: buf.Editor, Global: args.Global}, ev)
	applied, ok := resp.(editor.Applied)
	if !ok {
		return NoMatch{}
	}
	next := buf.Clone()
	next.Editor = applied.Buffer
	if applied.Change == editor.ChangeContent {
		e.selected, e.scroll = 0, 0
	}
	return UpdateEditorBuffer{Buffer: next}
}

// move shifts the selection within n results, reporting whether it changed
func (e *Engine) move(k tcell.Key, n int) bool {
	if n == 0 {
		return false
	}
	page := max(e.rows, 1)
	sel := min(e.selected, n-1)
	switch k {
	case tcell.KeyUp:
		sel--
	case tcell.KeyDown:
		sel++
	case tcell.KeyPgUp:
		sel -= page
	case tcell.KeyPgDn:
		sel += page
	}
	sel = min(max(sel, 0), n-1)
	if sel == e.selected {
		return false
	}
	e.selected = sel
	e.followSelection()
	return true
}

// followSelection scrolls so the selected row is among the visible rows
func (e *Engine) followSelection() {
	rows := max(e.rows, 1)
	if e.selected < e.scroll {
		e.scroll = e.selected
	}
	if e.selected >= e.scroll+rows {
		e.scroll = e.selected - rows + 1
	}
	e.scroll = max(e.scroll, 0)
}
