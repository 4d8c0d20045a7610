package editor

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
)

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func apply(t *testing.T, e *Engine, buf Buffer, ev tcell.Event) (Buffer, Change, bool) {
	t.Helper()
	switch resp := e.ApplyEvent(Args{Buffer: buf}, ev).(type) {
	case Applied:
		return resp.Buffer, resp.Change, true
	case NotApplied:
		return buf, ChangeCaret, false
	default:
		t.Fatalf("unexpected response %T", resp)
	}
	return buf, ChangeCaret, false
}

func TestApplyTyping(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("")

	buf, change, ok := apply(t, e, buf, runeKey('h'))
	if !ok || change != ChangeContent {
		t.Fatalf("typing: ok=%v change=%v", ok, change)
	}
	buf, _, _ = apply(t, e, buf, runeKey('i'))
	buf, _, _ = apply(t, e, buf, key(tcell.KeyEnter, tcell.ModNone))
	if buf.Value() != "hi\n" {
		t.Errorf("value = %q", buf.Value())
	}

	buf, change, ok = apply(t, e, buf, key(tcell.KeyUp, tcell.ModNone))
	if !ok || change != ChangeCaret {
		t.Errorf("up: ok=%v change=%v", ok, change)
	}
	if buf.Caret.Line != 0 {
		t.Errorf("caret line = %d", buf.Caret.Line)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("abc")
	buf.Caret.Col = 3
	_, _, _ = apply(t, e, buf, key(tcell.KeyBackspace2, tcell.ModNone))
	if buf.Value() != "abc" {
		t.Errorf("input buffer mutated: %q", buf.Value())
	}
}

func TestNotApplied(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("abc")

	tests := []struct {
		name string
		ev   tcell.Event
	}{
		{"function key", key(tcell.KeyF5, tcell.ModNone)},
		{"escape", key(tcell.KeyEscape, tcell.ModNone)},
		{"backspace at start", key(tcell.KeyBackspace2, tcell.ModNone)},
		{"left at start", key(tcell.KeyLeft, tcell.ModNone)},
		{"resize", tcell.NewEventResize(80, 24)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := apply(t, e, buf, tt.ev); ok {
				t.Error("expected NotApplied")
			}
		})
	}
}

func TestSingleLineAndReadOnly(t *testing.T) {
	single := NewEngine(Config{LineMode: SingleLine})
	buf := NewBuffer("x")
	if _, _, ok := apply(t, single, buf, key(tcell.KeyEnter, tcell.ModNone)); ok {
		t.Error("single-line Enter should not apply")
	}
	if _, _, ok := apply(t, single, buf, key(tcell.KeyUp, tcell.ModNone)); ok {
		t.Error("single-line Up should not apply")
	}

	ro := NewEngine(Config{EditMode: ReadOnly})
	if _, _, ok := apply(t, ro, buf, runeKey('y')); ok {
		t.Error("read-only typing should not apply")
	}
	if _, change, ok := apply(t, ro, buf, key(tcell.KeyEnd, tcell.ModNone)); !ok || change != ChangeCaret {
		t.Error("read-only motion should apply")
	}
}

func TestShiftSelectsAndCtrlKeys(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("hello world")

	buf, _, _ = apply(t, e, buf, key(tcell.KeyRight, tcell.ModShift|tcell.ModCtrl))
	if buf.SelectedText() != "hello " {
		t.Errorf("selected = %q", buf.SelectedText())
	}
	buf, _, _ = apply(t, e, buf, key(tcell.KeyBackspace2, tcell.ModNone))
	if buf.Value() != "world" {
		t.Errorf("delete selection left %q", buf.Value())
	}

	buf, _, _ = apply(t, e, buf, key(tcell.KeyCtrlE, tcell.ModCtrl))
	if buf.Caret.Col != 5 {
		t.Errorf("ctrl-e col = %d", buf.Caret.Col)
	}
	buf, _, _ = apply(t, e, buf, key(tcell.KeyCtrlW, tcell.ModCtrl))
	if buf.Value() != "" {
		t.Errorf("ctrl-w left %q", buf.Value())
	}

	buf = NewBuffer("abc")
	ev := tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModCtrl)
	if _, _, ok := apply(t, e, buf, ev); !ok {
		t.Error("ctrl+k as rune should kill line")
	}
}

func TestRenderZeroArea(t *testing.T) {
	e := NewEngine(DefaultConfig())
	s := layout.NewSurface(nil)
	if err := s.Start(layout.SurfaceProps{Size: geom.Sz(10, 10)}); err != nil {
		t.Fatal(err)
	}
	box, err := s.BoxStart(layout.FlexBoxProps{ID: "tiny", RequestedSize: geom.MustPercentSize(5, 100)})
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Render(Args{Buffer: NewBuffer("x")}, box)
	if !errors.Is(err, component.ErrEngineRender) {
		t.Errorf("expected ErrEngineRender, got %v", err)
	}
	if _, err := e.Render(Args{}, nil); !errors.Is(err, component.ErrEngineRender) {
		t.Errorf("nil box: %v", err)
	}
}

func renderToScreen(t *testing.T, e *Engine, args Args, w, h int) tcell.SimulationScreen {
	t.Helper()
	p, err := layout.Run(nil, layout.SurfaceProps{Size: geom.Sz(w, h)}, func(s *layout.Surface) error {
		return s.Box(layout.FlexBoxProps{ID: "ed", RequestedSize: geom.MustPercentSize(100, 100)}, func(box *layout.FlexBox) error {
			p, err := e.Render(args, box)
			if err != nil {
				return err
			}
			s.Render(p)
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	render.Paint(screen, p)
	return screen
}

func TestRenderText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineNumbers = true
	e := NewEngine(cfg)

	buf := NewBuffer("alpha\nbeta")
	buf.Caret = Caret{Line: 1, Col: 2}
	screen := renderToScreen(t, e, Args{Buffer: buf, Focused: true}, 12, 3)

	// gutter "1│" then text
	if r, _, _, _ := screen.GetContent(0, 0); r != '1' {
		t.Errorf("gutter = %q", r)
	}
	if r, _, _, _ := screen.GetContent(2, 0); r != 'a' {
		t.Errorf("line 1 start = %q", r)
	}
	if r, _, _, _ := screen.GetContent(2, 1); r != 'b' {
		t.Errorf("line 2 start = %q", r)
	}
	x, y, visible := screen.GetCursor()
	if !visible || x != 4 || y != 1 {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}
	if e.Viewport() != geom.Sz(10, 3) {
		t.Errorf("viewport = %s", e.Viewport())
	}
}

func TestRenderScrollsToCaret(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("l0\nl1\nl2\nl3\nl4")
	buf.Caret = Caret{Line: 4}
	screen := renderToScreen(t, e, Args{Buffer: buf, Focused: true}, 5, 2)

	if r, _, _, _ := screen.GetContent(1, 1); r != '4' {
		t.Errorf("last row = %q, want caret line", r)
	}
	// up indicator in the top-right corner
	if r, _, _, _ := screen.GetContent(4, 0); r != '▲' {
		t.Errorf("indicator = %q", r)
	}
	if buf.Scroll.Row != 0 {
		t.Error("render must not modify the caller's buffer")
	}
}

func TestRenderCaretOnWideText(t *testing.T) {
	e := NewEngine(DefaultConfig())
	buf := NewBuffer("日本語日本語日本語")
	buf.Caret = Caret{Col: 7}
	screen := renderToScreen(t, e, Args{Buffer: buf, Focused: true}, 10, 2)

	x, y, visible := screen.GetCursor()
	if !visible || x != 8 || y != 0 {
		t.Errorf("cursor = %d,%d visible=%v, want 8,0", x, y, visible)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != '日' {
		t.Errorf("first visible rune = %q", r)
	}
	if r, _, _, _ := screen.GetContent(8, 0); r != '本' {
		t.Errorf("rune under caret = %q", r)
	}
}

type vowelHighlighter struct{ calls int }

func (h *vowelHighlighter) Name() string { return "vowels" }

func (h *vowelHighlighter) Highlight(line string) []Span {
	h.calls++
	var spans []Span
	for i, r := range []rune(line) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			spans = append(spans, Span{Start: i, End: i + 1, Style: style.Style{Bold: true}})
		}
	}
	return spans
}

func TestHighlightCached(t *testing.T) {
	h := &vowelHighlighter{}
	cfg := DefaultConfig()
	cfg.Highlighter = h
	e := NewEngine(cfg)
	g := component.NewGlobalData(geom.Sz(20, 2))

	args := Args{Buffer: NewBuffer("bat"), Global: g}
	screen := renderToScreen(t, e, args, 20, 2)
	_ = renderToScreen(t, e, args, 20, 2)

	if h.calls != 1 {
		t.Errorf("highlighter calls = %d, want 1", h.calls)
	}
	_, _, st, _ := screen.GetContent(1, 0)
	if _, _, attr := st.Decompose(); attr&tcell.AttrBold == 0 {
		t.Error("vowel should be bold")
	}
	_, _, st, _ = screen.GetContent(0, 0)
	if _, _, attr := st.Decompose(); attr&tcell.AttrBold != 0 {
		t.Error("consonant should not be bold")
	}
}
