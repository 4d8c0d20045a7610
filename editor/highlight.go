package editor

import (
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/style"
)

// Span styles runes [Start, End) of a line
type Span struct {
	Start int
	End   int
	Style style.Style
}

// Highlighter turns one line into styled spans; it must be pure
// Name keys cached results, so distinct highlighters need distinct names
type Highlighter interface {
	Name() string
	Highlight(line string) []Span
}

// PlainHighlighter applies no styling
type PlainHighlighter struct{}

func (PlainHighlighter) Name() string { return "plain" }

func (PlainHighlighter) Highlight(string) []Span { return nil }

// highlight returns spans for line, using the global cache when available
func highlight(h Highlighter, g *component.GlobalData, line string) []Span {
	if h == nil || line == "" {
		return nil
	}
	if g == nil {
		return h.Highlight(line)
	}
	key := "editor/hl/" + h.Name() + "\x00" + line
	if v, ok := g.CacheGet(key); ok {
		if spans, ok := v.([]Span); ok {
			return spans
		}
	}
	spans := h.Highlight(line)
	g.CachePut(key, spans)
	return spans
}
