package dialog

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func bounds(w, h int) layout.SurfaceBounds {
	return layout.SurfaceBounds{Size: geom.Sz(w, h)}
}

func TestFrame(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name    string
		w, h    int
		results int
		want    geom.Rect
	}{
		{"centred", 40, 20, 3, geom.R(8, 6, 24, 7)},
		{"no results", 40, 20, 0, geom.R(8, 8, 24, 3)},
		{"visible cap", 40, 30, 50, geom.R(8, 8, 24, 14)},
		{"height capped", 40, 5, 50, geom.R(8, 0, 24, 5)},
		{"width floor", 12, 10, 0, geom.R(1, 3, 10, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Frame(bounds(tt.w, tt.h), tt.results)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("frame = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFrameTooSmall(t *testing.T) {
	e := NewEngine(DefaultConfig())
	for _, b := range []layout.SurfaceBounds{bounds(9, 10), bounds(40, 2), bounds(0, 0)} {
		if _, err := e.Frame(b, 1); !errors.Is(err, component.ErrEngineRender) {
			t.Errorf("bounds %s: err = %v", b.Size, err)
		}
		_, err := e.Render(Args{Buffer: NewBuffer("t", nil)}, b)
		if !errors.Is(err, component.ErrEngineRender) {
			t.Errorf("render %s: err = %v", b.Size, err)
		}
	}
}

func TestRenderInactive(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p, err := e.Render(Args{Buffer: Buffer{}}, bounds(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Errorf("inactive dialog drew %d ops", p.Len())
	}
}

func TestRenderScreen(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("Open", []string{"alpha", "beta", "gamma"})

	p, err := e.Render(Args{Buffer: buf, Focused: true}, bounds(40, 20))
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range p.Ops(render.ZNormal) {
		t.Errorf("dialog op below glass: %T", op)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 20)
	render.Paint(screen, p)

	// frame at 8,6 size 24x7
	checks := []struct {
		x, y int
		want rune
	}{
		{8, 6, '╭'},
		{31, 6, '╮'},
		{8, 8, '├'},
		{8, 12, '╰'},
		{9, 7, '>'},
		{9, 9, 'a'},
		{9, 10, 'b'},
		{9, 11, 'g'},
	}
	for _, c := range checks {
		if r, _, _, _ := screen.GetContent(c.x, c.y); r != c.want {
			t.Errorf("cell %d,%d = %q, want %q", c.x, c.y, r, c.want)
		}
	}

	x, y, visible := screen.GetCursor()
	if !visible || x != 11 || y != 7 {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}
	if e.Bounds() != bounds(40, 20) {
		t.Errorf("bounds not recorded: %+v", e.Bounds())
	}
}

func TestEnterEscape(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("Open", []string{"alpha", "beta"})

	resp, ok := e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyEnter)).(DialogChoice)
	if !ok || resp.Choice.Kind != ChoiceYes || resp.Choice.Text != "alpha" {
		t.Errorf("enter = %+v", resp)
	}

	resp, ok = e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyEscape)).(DialogChoice)
	if !ok || resp.Choice.Kind != ChoiceNo {
		t.Errorf("escape = %+v", resp)
	}

	normal := DefaultConfig()
	normal.Mode = ModeNormal
	e = NewEngine(normal)
	buf.Editor.InsertString("typed")
	resp, ok = e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyEnter)).(DialogChoice)
	if !ok || resp.Choice.Text != "typed" {
		t.Errorf("normal enter = %+v", resp)
	}
	if _, ok := e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyDown)).(NoMatch); !ok {
		t.Error("navigation in normal mode should not match")
	}
}

func TestNavigation(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("Open", []string{"a", "b", "c"})
	args := Args{Buffer: buf}

	if _, ok := e.ApplyEvent(args, key(tcell.KeyUp)).(NoMatch); !ok {
		t.Error("up at top should not match")
	}
	if _, ok := e.ApplyEvent(args, key(tcell.KeyDown)).(SelectScrollResultsPanel); !ok {
		t.Error("down should move selection")
	}
	e.ApplyEvent(args, key(tcell.KeyPgDn))
	if e.Selected() != 2 {
		t.Errorf("selected = %d, want 2", e.Selected())
	}
	if _, ok := e.ApplyEvent(args, key(tcell.KeyDown)).(NoMatch); !ok {
		t.Error("down at bottom should not match")
	}

	resp := e.ApplyEvent(args, key(tcell.KeyEnter)).(DialogChoice)
	if resp.Choice.Text != "c" {
		t.Errorf("choice = %q", resp.Choice.Text)
	}
	if e.Selected() != 0 {
		t.Errorf("selection not reset after choice: %d", e.Selected())
	}
}

func TestTypingFilters(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("Open", []string{"main.go", "readme.md", "go.mod"})
	e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyDown))

	for _, r := range "me" {
		upd, ok := e.ApplyEvent(Args{Buffer: buf}, runeKey(r)).(UpdateEditorBuffer)
		if !ok {
			t.Fatalf("typing %q did not update", r)
		}
		buf = upd.Buffer
	}
	if buf.Input() != "me" || buf.Title != "Open" || !buf.Active {
		t.Errorf("buffer = %+v", buf)
	}
	if e.Selected() != 0 {
		t.Errorf("content change kept selection %d", e.Selected())
	}

	ms := e.Matches(buf)
	if len(ms) != 1 || ms[0].Text != "readme.md" {
		t.Errorf("matches = %+v", ms)
	}
	resp := e.ApplyEvent(Args{Buffer: buf}, key(tcell.KeyEnter)).(DialogChoice)
	if resp.Choice.Text != "readme.md" {
		t.Errorf("choice = %q", resp.Choice.Text)
	}
}

func TestInactiveIgnoresEvents(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if _, ok := e.ApplyEvent(Args{}, key(tcell.KeyEnter)).(NoMatch); !ok {
		t.Error("inactive dialog resolved")
	}
	if _, ok := e.ApplyEvent(Args{Buffer: NewBuffer("", nil)}, tcell.NewEventResize(10, 10)).(NoMatch); !ok {
		t.Error("resize matched")
	}
}
