// Package editor implements a reusable text editing engine and the component
// shim that binds it to application state.
//
// The engine never owns text. Each call receives the current Buffer and
// returns a new one inside Applied; the application stores it through its own
// dispatch path. The engine keeps only the size of the last rendered viewport,
// which page motions and scrolling need.
package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
)

// Args is the input to one engine call
type Args struct {
	Buffer  Buffer
	Global  *component.GlobalData
	Focused bool
}

// Engine applies key events to buffers and renders them
type Engine struct {
	cfg      Config
	viewport geom.Size
}

// NewEngine creates an engine; cfg is copied and never changes afterwards
func NewEngine(cfg Config) *Engine {
	if cfg.Highlighter == nil {
		cfg.Highlighter = PlainHighlighter{}
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Viewport returns the text area size of the last render
func (e *Engine) Viewport() geom.Size {
	return e.viewport
}

// Reset forgets the last viewport
func (e *Engine) Reset() {
	e.viewport = geom.Size{}
}

// ApplyEvent applies ev to a copy of args.Buffer
// Unrecognized events, and events that leave the buffer unchanged, return NotApplied
func (e *Engine) ApplyEvent(args Args, ev tcell.Event) ApplyResponse {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return NotApplied{}
	}

	orig := args.Buffer.Clone()
	b := orig.Clone()
	change, handled := e.applyKey(&b, key)
	if !handled {
		return NotApplied{}
	}
	if !e.viewport.IsEmpty() {
		b.AdjustScroll(e.viewport.Width, e.viewport.Height)
	}
	if b.Equal(orig) {
		return NotApplied{}
	}
	return Applied{Buffer: b, Change: change}
}

// ctrlLetters maps Ctrl+letter runes to the control keys some terminals report instead
var ctrlLetters = map[rune]tcell.Key{
	'a': tcell.KeyCtrlA,
	'e': tcell.KeyCtrlE,
	'k': tcell.KeyCtrlK,
	'u': tcell.KeyCtrlU,
	'w': tcell.KeyCtrlW,
}

func (e *Engine) applyKey(b *Buffer, ev *tcell.EventKey) (Change, bool) {
	key := ev.Key()
	mod := ev.Modifiers()
	if key == tcell.KeyRune && mod&tcell.ModCtrl != 0 {
		k, ok := ctrlLetters[unicode.ToLower(ev.Rune())]
		if !ok {
			return ChangeCaret, false
		}
		key = k
	}

	if move := e.motion(key, mod); move != nil {
		from := b.Caret
		move(b)
		if mod&tcell.ModShift != 0 {
			b.extendSelection(from)
		} else {
			b.ClearSelection()
		}
		return ChangeCaret, true
	}

	if e.cfg.EditMode == ReadOnly {
		return ChangeCaret, false
	}

	switch key {
	case tcell.KeyEnter:
		if e.cfg.LineMode == SingleLine {
			return ChangeCaret, false
		}
		b.InsertNewline()
		return ChangeContent, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ChangeContent, b.DeleteWordBackward()
		}
		return ChangeContent, b.DeleteBackward()
	case tcell.KeyDelete:
		if mod&tcell.ModCtrl != 0 {
			return ChangeContent, b.DeleteWordForward()
		}
		return ChangeContent, b.DeleteForward()
	case tcell.KeyCtrlK:
		return ChangeContent, b.DeleteToEndOfLine()
	case tcell.KeyCtrlU:
		return ChangeContent, b.DeleteToStartOfLine()
	case tcell.KeyCtrlW:
		return ChangeContent, b.DeleteWordBackward()
	case tcell.KeyRune:
		r := ev.Rune()
		if r < ' ' {
			return ChangeCaret, false
		}
		b.Insert(r)
		return ChangeContent, true
	}
	return ChangeCaret, false
}

// motion returns the caret movement bound to key, nil when key is not a motion
func (e *Engine) motion(key tcell.Key, mod tcell.ModMask) func(*Buffer) {
	ctrl := mod&tcell.ModCtrl != 0
	multi := e.cfg.LineMode == MultiLine

	switch key {
	case tcell.KeyUp:
		if multi {
			return (*Buffer).MoveUp
		}
	case tcell.KeyDown:
		if multi {
			return (*Buffer).MoveDown
		}
	case tcell.KeyLeft:
		if ctrl {
			return (*Buffer).MoveWordLeft
		}
		return (*Buffer).MoveLeft
	case tcell.KeyRight:
		if ctrl {
			return (*Buffer).MoveWordRight
		}
		return (*Buffer).MoveRight
	case tcell.KeyHome:
		if ctrl {
			return (*Buffer).MoveToStart
		}
		return (*Buffer).MoveToLineStart
	case tcell.KeyEnd:
		if ctrl {
			return (*Buffer).MoveToEnd
		}
		return (*Buffer).MoveToLineEnd
	case tcell.KeyCtrlA:
		return (*Buffer).MoveToLineStart
	case tcell.KeyCtrlE:
		return (*Buffer).MoveToLineEnd
	case tcell.KeyPgUp:
		if multi {
			h := e.viewport.Height
			return func(b *Buffer) { b.PageUp(h) }
		}
	case tcell.KeyPgDn:
		if multi {
			h := e.viewport.Height
			return func(b *Buffer) { b.PageDown(h) }
		}
	}
	return nil
}
