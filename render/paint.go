package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/mattn/go-runewidth"
)

// Target is the subset of tcell.Screen the painter writes to
type Target interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	ShowCursor(x, y int)
	HideCursor()
}

// Paint writes the pipeline to target in z-order, clipped to the target size
// The cursor is shown at the last Caret op, hidden when there is none
// Caller is responsible for Show()
func Paint(target Target, p *Pipeline) {
	w, h := target.Size()
	clip := geom.R(0, 0, w, h)

	var caret *geom.Position
	p.Each(func(_ ZOrder, op Op) {
		switch op := op.(type) {
		case Text:
			paintText(target, clip, op)
		case Fill:
			paintFill(target, clip, op)
		case Caret:
			if clip.Contains(op.Pos) {
				pos := op.Pos
				caret = &pos
			}
		}
	})

	if caret != nil {
		target.ShowCursor(caret.Col, caret.Row)
	} else {
		target.HideCursor()
	}
}

func paintText(target Target, clip geom.Rect, op Text) {
	if op.Pos.Row < clip.Pos.Row || op.Pos.Row >= clip.Bottom() {
		return
	}
	x := op.Pos.Col
	for _, r := range op.Text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > clip.Right() {
			return
		}
		if x >= clip.Pos.Col {
			target.SetContent(x, op.Pos.Row, r, nil, op.Style)
		}
		x += rw
	}
}

func paintFill(target Target, clip geom.Rect, op Fill) {
	area := op.Rect.Intersect(clip)
	if area.IsEmpty() {
		return
	}
	ch := op.Rune
	if ch == 0 {
		ch = ' '
	}
	for y := area.Pos.Row; y < area.Bottom(); y++ {
		for x := area.Pos.Col; x < area.Right(); x++ {
			target.SetContent(x, y, ch, nil, op.Style)
		}
	}
}

// TextWidth returns the display width of s in cells
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most w display cells
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}
