// Package style resolves style-name tags against a stylesheet into concrete
// tcell styles attached to layout boxes.
package style

import (
	"github.com/gdamore/tcell/v2"
)

// Style bundles colors, attributes and box padding under an id tag
// Zero-valued fields mean "unset" so styles can be layered with Merge
type Style struct {
	ID        string
	Fg        tcell.Color
	Bg        tcell.Color
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
	Padding   int
}

// IsZero returns true if style sets nothing beyond its id
func (s Style) IsZero() bool {
	return s.Fg == tcell.ColorDefault && s.Bg == tcell.ColorDefault &&
		!s.Bold && !s.Dim && !s.Italic && !s.Underline && !s.Reverse && s.Padding == 0
}

// Merge layers o over s: set colors and padding in o win, attributes accumulate
func (s Style) Merge(o Style) Style {
	if o.ID != "" {
		if s.ID == "" {
			s.ID = o.ID
		} else {
			s.ID += "+" + o.ID
		}
	}
	if o.Fg != tcell.ColorDefault {
		s.Fg = o.Fg
	}
	if o.Bg != tcell.ColorDefault {
		s.Bg = o.Bg
	}
	s.Bold = s.Bold || o.Bold
	s.Dim = s.Dim || o.Dim
	s.Italic = s.Italic || o.Italic
	s.Underline = s.Underline || o.Underline
	s.Reverse = s.Reverse || o.Reverse
	if o.Padding > 0 {
		s.Padding = o.Padding
	}
	return s
}

// Merge folds an ordered style list into one, later entries winning
func Merge(styles []Style) Style {
	var out Style
	for _, st := range styles {
		out = out.Merge(st)
	}
	return out
}

// Padding returns the padding of the merged list
func Padding(styles []Style) int {
	p := 0
	for _, st := range styles {
		if st.Padding > 0 {
			p = st.Padding
		}
	}
	return p
}

// TcellStyle converts to a tcell.Style on top of tcell.StyleDefault
func (s Style) TcellStyle() tcell.Style {
	ts := tcell.StyleDefault
	if s.Fg != tcell.ColorDefault {
		ts = ts.Foreground(s.Fg)
	}
	if s.Bg != tcell.ColorDefault {
		ts = ts.Background(s.Bg)
	}
	return ts.
		Bold(s.Bold).
		Dim(s.Dim).
		Italic(s.Italic).
		Underline(s.Underline).
		Reverse(s.Reverse)
}
