package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
	"github.com/mattn/go-runewidth"
)

// Render draws args.Buffer into the content area of box
// The buffer is not modified; scroll is clamped locally so the caret stays visible
func (e *Engine) Render(args Args, box *layout.FlexBox) (*render.Pipeline, error) {
	if box == nil {
		return nil, fmt.Errorf("editor: no box: %w", component.ErrEngineRender)
	}
	area := box.ContentRect()
	if area.IsEmpty() {
		return nil, fmt.Errorf("editor: box %q area %s: %w", box.ID, area.Size, component.ErrEngineRender)
	}

	buf := args.Buffer
	if len(buf.Lines) == 0 {
		buf.Lines = []string{""}
	}

	gutterW := 0
	if e.cfg.LineNumbers {
		gutterW = len(strconv.Itoa(len(buf.Lines))) + 1
	}
	textW := area.Size.Width - gutterW
	if textW < 1 {
		return nil, fmt.Errorf("editor: box %q too narrow for gutter (%d cols): %w", box.ID, area.Size.Width, component.ErrEngineRender)
	}
	textH := area.Size.Height
	e.viewport = geom.Sz(textW, textH)
	buf.AdjustScroll(textW, textH)

	styles := e.cfg.Styles
	base := box.Style().Merge(styles.Text)
	gutter := base.Merge(styles.Gutter).TcellStyle()

	p := render.NewPipeline()
	p.Push(render.ZBackground, render.Fill{Rect: area, Style: base.TcellStyle()})

	for y := 0; y < textH; y++ {
		lineIdx := buf.Scroll.Row + y
		row := area.Pos.Row + y
		textPos := geom.Pos(area.Pos.Col+gutterW, row)

		rowStyle := base
		if args.Focused && lineIdx == buf.Caret.Line && !styles.CurrentLine.IsZero() {
			rowStyle = base.Merge(styles.CurrentLine)
			p.Push(render.ZBackground, render.Fill{
				Rect:  geom.Rect{Pos: textPos, Size: geom.Sz(textW, 1)},
				Style: rowStyle.TcellStyle(),
			})
		}

		if gutterW > 0 {
			label := strings.Repeat(" ", gutterW-1)
			if lineIdx < len(buf.Lines) {
				label = fmt.Sprintf("%*d", gutterW-1, lineIdx+1)
			}
			p.Push(render.ZNormal, render.Text{Pos: geom.Pos(area.Pos.Col, row), Text: label + "│", Style: gutter})
		}

		if lineIdx >= len(buf.Lines) {
			continue
		}
		e.renderLine(p, args.Global, buf, lineIdx, textPos, textW, rowStyle)
	}

	indicator := base.Merge(styles.Indicator).TcellStyle()
	edge := area.Right() - 1
	if buf.Scroll.Row > 0 {
		p.Push(render.ZHigh, render.Text{Pos: geom.Pos(edge, area.Pos.Row), Text: "▲", Style: indicator})
	}
	if buf.Scroll.Row+textH < len(buf.Lines) {
		p.Push(render.ZHigh, render.Text{Pos: geom.Pos(edge, area.Bottom()-1), Text: "▼", Style: indicator})
	}

	if args.Focused {
		if pos, ok := caretPos(buf, area.Pos.Col+gutterW, area.Pos.Row, textW); ok {
			p.Push(render.ZCaret, render.Caret{Pos: pos})
		}
	}
	return p, nil
}

// renderLine emits the visible part of one line as runs of equally styled text
func (e *Engine) renderLine(p *render.Pipeline, g *component.GlobalData, buf Buffer, lineIdx int, at geom.Position, width int, rowStyle style.Style) {
	line := buf.Lines[lineIdx]
	runes := []rune(line)
	if buf.Scroll.Col >= len(runes) {
		return
	}
	spans := highlight(e.cfg.Highlighter, g, line)

	var (
		run      strings.Builder
		runStyle tcell.Style
		runStart = at
		x        = at.Col
	)
	flush := func() {
		if run.Len() > 0 {
			p.Push(render.ZNormal, render.Text{Pos: runStart, Text: run.String(), Style: runStyle})
			run.Reset()
		}
	}

	for i := buf.Scroll.Col; i < len(runes); i++ {
		rw := runewidth.RuneWidth(runes[i])
		if x+rw > at.Col+width {
			break
		}
		st := rowStyle
		for _, sp := range spans {
			if i >= sp.Start && i < sp.End {
				st = st.Merge(sp.Style)
			}
		}
		if buf.Selected(lineIdx, i) {
			st = st.Merge(e.cfg.Styles.Selection)
		}
		ts := st.TcellStyle()
		if run.Len() == 0 || ts != runStyle {
			flush()
			runStyle = ts
			runStart = geom.Pos(x, at.Row)
		}
		run.WriteRune(runes[i])
		x += rw
	}
	flush()
}

// caretPos maps the caret to a screen cell, false when it is scrolled out of view
func caretPos(buf Buffer, left, top, width int) (geom.Position, bool) {
	row := buf.Caret.Line - buf.Scroll.Row
	if row < 0 || buf.Caret.Col < buf.Scroll.Col {
		return geom.Position{}, false
	}
	runes := []rune(buf.Line(buf.Caret.Line))
	end := min(buf.Caret.Col, len(runes))
	if buf.Scroll.Col > end {
		return geom.Position{}, false
	}
	x := runewidth.StringWidth(string(runes[buf.Scroll.Col:end]))
	if x >= width {
		return geom.Position{}, false
	}
	return geom.Pos(left+x, top+row), true
}
