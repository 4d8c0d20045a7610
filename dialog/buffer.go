package dialog

import (
	"slices"

	"github.com/lixenwraith/flexterm/editor"
)

// Buffer is the state of one dialog, owned by application state
type Buffer struct {
	Editor  editor.Buffer // single-line input
	Title   string
	Results []string // candidates shown below the input
	Active  bool
}

// NewBuffer returns an active dialog with an empty input
func NewBuffer(title string, results []string) Buffer {
	return Buffer{
		Editor:  editor.NewBuffer(""),
		Title:   title,
		Results: results,
		Active:  true,
	}
}

// Input returns the current input text
func (b Buffer) Input() string {
	return b.Editor.Value()
}

// Clone returns a deep copy
func (b Buffer) Clone() Buffer {
	c := b
	c.Editor = b.Editor.Clone()
	c.Results = slices.Clone(b.Results)
	return c
}

// Closed returns a copy with Active cleared
func (b Buffer) Closed() Buffer {
	b.Active = false
	return b
}

// ChoiceKind is the user's answer
type ChoiceKind uint8

const (
	ChoiceYes ChoiceKind = iota // confirmed
	ChoiceNo                    // cancelled
)

func (k ChoiceKind) String() string {
	if k == ChoiceYes {
		return "yes"
	}
	return "no"
}

// Choice is how a dialog resolved; Text is the selected result or the input
type Choice struct {
	Kind ChoiceKind
	Text string
}
