package dialog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/fuzzy"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
	"github.com/mattn/go-runewidth"
)

const prompt = "> "

// Frame computes the dialog rectangle for bounds and a result count
// Width is WidthPercent of the bounds with a floor of minWidth; height is the
// chrome plus visible results. Both are capped at the bounds and the rectangle
// is centred in them.
func (e *Engine) Frame(bounds layout.SurfaceBounds, results int) (geom.Rect, error) {
	area := bounds.Rect()
	if area.Size.Width < minWidth || area.Size.Height < chromeRows {
		return geom.Rect{}, fmt.Errorf("dialog: bounds %s below minimum %dx%d: %w",
			area.Size, minWidth, chromeRows, component.ErrEngineRender)
	}

	w := max(e.cfg.WidthPercent.Of(area.Size.Width), minWidth)
	w = min(w, area.Size.Width)

	h := chromeRows
	if n := min(results, e.cfg.MaxVisibleResults); n > 0 {
		h += 1 + n // separator plus rows
	}
	h = min(h, area.Size.Height)

	origin := area.Pos.Add(geom.Pos((area.Size.Width-w)/2, (area.Size.Height-h)/2))
	return geom.Rect{Pos: origin, Size: geom.Sz(w, h)}, nil
}

// Render draws an active dialog over bounds; the layout box is ignored
// An inactive buffer yields an empty pipeline
func (e *Engine) Render(args Args, bounds layout.SurfaceBounds) (*render.Pipeline, error) {
	p := render.NewPipeline()
	if !args.Buffer.Active {
		return p, nil
	}

	matches := e.Matches(args.Buffer)
	frame, err := e.Frame(bounds, len(matches))
	if err != nil {
		return nil, err
	}
	e.bounds = bounds

	// rows left for results after border, input and separator
	e.rows = max(frame.Size.Height-chromeRows-1, 0)
	if len(matches) > 0 {
		e.selected = min(e.selected, len(matches)-1)
		e.followSelection()
	}

	styles := e.cfg.Styles
	base := styles.Frame
	p.Push(render.ZGlass, render.Fill{Rect: frame, Style: base.TcellStyle()})
	e.border(p, frame, base.TcellStyle(), e.rows > 0)
	e.title(p, frame, args.Buffer.Title, base.Merge(styles.Title).TcellStyle())

	inner := frame.Inset(1)
	e.inputRow(p, args, geom.Rect{Pos: inner.Pos, Size: geom.Sz(inner.Size.Width, 1)}, base.Merge(styles.Input))

	if e.rows > 0 {
		top := geom.Pos(inner.Pos.Col, inner.Pos.Row+2)
		e.resultRows(p, matches, top, inner.Size.Width)
		e.counter(p, frame, len(matches), base.TcellStyle())
	}
	return p, nil
}

func (e *Engine) border(p *render.Pipeline, r geom.Rect, st tcell.Style, separator bool) {
	inner := r.Size.Width - 2
	line := strings.Repeat("─", inner)
	p.Push(render.ZGlass,
		render.Text{Pos: r.Pos, Text: "╭" + line + "╮", Style: st},
		render.Text{Pos: geom.Pos(r.Pos.Col, r.Bottom()-1), Text: "╰" + line + "╯", Style: st},
	)
	for y := r.Pos.Row + 1; y < r.Bottom()-1; y++ {
		p.Push(render.ZGlass,
			render.Text{Pos: geom.Pos(r.Pos.Col, y), Text: "│", Style: st},
			render.Text{Pos: geom.Pos(r.Right()-1, y), Text: "│", Style: st},
		)
	}
	if separator {
		p.Push(render.ZGlass, render.Text{Pos: geom.Pos(r.Pos.Col, r.Pos.Row+2), Text: "├" + line + "┤", Style: st})
	}
}

func (e *Engine) title(p *render.Pipeline, r geom.Rect, title string, st tcell.Style) {
	if title == "" || r.Size.Width < 6 {
		return
	}
	t := render.Truncate(" "+title+" ", r.Size.Width-4)
	x := r.Pos.Col + (r.Size.Width-render.TextWidth(t))/2
	p.Push(render.ZGlass, render.Text{Pos: geom.Pos(x, r.Pos.Row), Text: t, Style: st})
}

// inputRow draws the prompt and the input tail that keeps the caret visible
func (e *Engine) inputRow(p *render.Pipeline, args Args, row geom.Rect, st style.Style) {
	ts := st.TcellStyle()
	p.Push(render.ZGlass, render.Text{Pos: row.Pos, Text: render.Truncate(prompt, row.Size.Width), Style: ts})

	avail := row.Size.Width - len(prompt)
	if avail < 1 {
		return
	}
	eb := args.Buffer.Editor
	runes := []rune(eb.CurrentLine())
	caret := min(max(eb.Caret.Col, 0), len(runes))

	start := 0
	for runewidth.StringWidth(string(runes[start:caret])) >= avail {
		start++
	}
	visible := render.Truncate(string(runes[start:]), avail)
	x := row.Pos.Col + len(prompt)
	p.Push(render.ZGlass, render.Text{Pos: geom.Pos(x, row.Pos.Row), Text: visible, Style: ts})

	if args.Focused {
		cx := x + runewidth.StringWidth(string(runes[start:caret]))
		p.Push(render.ZCaret, render.Caret{Pos: geom.Pos(cx, row.Pos.Row)})
	}
}

func (e *Engine) resultRows(p *render.Pipeline, matches []fuzzy.Match, top geom.Position, width int) {
	styles := e.cfg.Styles
	normal := styles.Frame.Merge(styles.Result)
	selected := e.selectedStyle(normal)

	for i := 0; i < e.rows; i++ {
		idx := e.scroll + i
		if idx >= len(matches) {
			break
		}
		row := geom.Rect{Pos: top.Advance(geom.Vertical, i), Size: geom.Sz(width, 1)}
		rowStyle := normal
		if idx == e.selected && e.cfg.Mode == ModeAutocomplete {
			rowStyle = selected
			p.Push(render.ZGlass, render.Fill{Rect: row, Style: rowStyle.TcellStyle()})
		}
		e.resultText(p, matches[idx], row, rowStyle)
	}
}

// resultText draws one result with matched runes in the match style
func (e *Engine) resultText(p *render.Pipeline, m fuzzy.Match, row geom.Rect, rowStyle style.Style) {
	matchStyle := rowStyle.Merge(e.cfg.Styles.Match).TcellStyle()
	plain := rowStyle.TcellStyle()
	x := row.Pos.Col
	for i, r := range []rune(m.Text) {
		rw := runewidth.RuneWidth(r)
		if x+rw > row.Right() {
			break
		}
		st := plain
		if slices.Contains(m.Positions, i) {
			st = matchStyle
		}
		p.Push(render.ZGlass, render.Text{Pos: geom.Pos(x, row.Pos.Row), Text: string(r), Style: st})
		x += rw
	}
}

// counter shows "selected/total" on the bottom border
func (e *Engine) counter(p *render.Pipeline, r geom.Rect, total int, st tcell.Style) {
	label := fmt.Sprintf(" %d/%d ", min(e.selected+1, total), total)
	if total == 0 {
		label = " 0/0 "
	}
	w := render.TextWidth(label)
	if w > r.Size.Width-4 {
		return
	}
	p.Push(render.ZGlass, render.Text{Pos: geom.Pos(r.Right()-2-w, r.Bottom()-1), Text: label, Style: st})
}

// selectedStyle derives the highlight from Frame when Selected sets no background
func (e *Engine) selectedStyle(normal style.Style) style.Style {
	sel := normal.Merge(e.cfg.Styles.Selected)
	if e.cfg.Styles.Selected.Bg != tcell.ColorDefault {
		return sel
	}
	if normal.Bg == tcell.ColorDefault || normal.Fg == tcell.ColorDefault {
		sel.Reverse = true
		return sel
	}
	sel.Bg = style.Blend(normal.Bg, normal.Fg, 0.3)
	return sel
}
