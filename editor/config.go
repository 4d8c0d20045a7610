package editor

import "github.com/lixenwraith/flexterm/style"

// LineMode selects whether Enter inserts a newline
type LineMode uint8

const (
	MultiLine LineMode = iota
	SingleLine
)

// EditMode selects whether content can change
type EditMode uint8

const (
	ReadWrite EditMode = iota
	ReadOnly
)

// Styles are layered over the box style when rendering
type Styles struct {
	Text        style.Style
	Gutter      style.Style
	CurrentLine style.Style
	Selection   style.Style
	Indicator   style.Style // scroll arrows
}

// Config parameterizes an engine; fixed after NewEngine
type Config struct {
	LineMode    LineMode
	EditMode    EditMode
	LineNumbers bool
	Highlighter Highlighter
	Styles      Styles
}

// DefaultConfig is a multi-line read-write editor without line numbers
func DefaultConfig() Config {
	return Config{
		LineMode:    MultiLine,
		EditMode:    ReadWrite,
		Highlighter: PlainHighlighter{},
		Styles: Styles{
			Gutter:    style.Style{ID: "editor.gutter", Dim: true},
			Selection: style.Style{ID: "editor.selection", Reverse: true},
			Indicator: style.Style{ID: "editor.indicator", Dim: true},
		},
	}
}
