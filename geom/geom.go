// Package geom provides the value types the layout engine works in: cell
// positions, sizes, rectangles, percentage requests and flow direction.
package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrRange reports a malformed percentage or geometry input
var ErrRange = errors.New("value out of range")

// Direction is the axis along which a container places its children
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// Position is a cell coordinate, 0-indexed
type Position struct {
	Col int
	Row int
}

// Pos is shorthand for Position{col, row}
func Pos(col, row int) Position {
	return Position{Col: col, Row: row}
}

// Add returns p offset by o
func (p Position) Add(o Position) Position {
	return Position{Col: p.Col + o.Col, Row: p.Row + o.Row}
}

// Sub returns p minus o
func (p Position) Sub(o Position) Position {
	return Position{Col: p.Col - o.Col, Row: p.Row - o.Row}
}

// Along returns the component on the given axis
func (p Position) Along(dir Direction) int {
	if dir == Vertical {
		return p.Row
	}
	return p.Col
}

// Advance returns p moved n cells along dir
func (p Position) Advance(dir Direction, n int) Position {
	if dir == Vertical {
		p.Row += n
	} else {
		p.Col += n
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("[col:%d, row:%d]", p.Col, p.Row)
}

// Size is a width/height pair in cells
type Size struct {
	Width  int
	Height int
}

// Sz is shorthand for Size{w, h}
func Sz(w, h int) Size {
	return Size{Width: w, Height: h}
}

// Along returns the extent on the given axis
func (s Size) Along(dir Direction) int {
	if dir == Vertical {
		return s.Height
	}
	return s.Width
}

// WithAlong returns s with the extent on dir replaced by n
func (s Size) WithAlong(dir Direction, n int) Size {
	if dir == Vertical {
		s.Height = n
	} else {
		s.Width = n
	}
	return s
}

// IsEmpty reports whether either dimension is zero or negative
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Sub shrinks s by o, clamped at zero
func (s Size) Sub(o Size) Size {
	return Size{Width: max(s.Width-o.Width, 0), Height: max(s.Height-o.Height, 0)}
}

func (s Size) String() string {
	return fmt.Sprintf("[w:%d, h:%d]", s.Width, s.Height)
}

// Rect is an absolute rectangle: origin plus size
type Rect struct {
	Pos  Position
	Size Size
}

// R builds a Rect from origin and dimensions
func R(col, row, w, h int) Rect {
	return Rect{Pos: Pos(col, row), Size: Sz(w, h)}
}

// Right returns the exclusive right column
func (r Rect) Right() int { return r.Pos.Col + r.Size.Width }

// Bottom returns the exclusive bottom row
func (r Rect) Bottom() int { return r.Pos.Row + r.Size.Height }

// IsEmpty reports whether the rect covers no cells
func (r Rect) IsEmpty() bool { return r.Size.IsEmpty() }

// Contains reports whether p lies inside r
func (r Rect) Contains(p Position) bool {
	return p.Col >= r.Pos.Col && p.Col < r.Right() &&
		p.Row >= r.Pos.Row && p.Row < r.Bottom()
}

// Inset returns r shrunk by n cells on all sides, never negative
func (r Rect) Inset(n int) Rect {
	if n <= 0 {
		return r
	}
	return Rect{
		Pos:  r.Pos.Add(Pos(n, n)),
		Size: r.Size.Sub(Sz(2*n, 2*n)),
	}
}

// Intersect returns the overlap of r and o, empty if disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Pos.Col, o.Pos.Col)
	y0 := max(r.Pos.Row, o.Pos.Row)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{Pos: Pos(x0, y0)}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Clamp returns p moved inside r; r must not be empty
func (r Rect) Clamp(p Position) Position {
	p.Col = min(max(p.Col, r.Pos.Col), r.Right()-1)
	p.Row = min(max(p.Row, r.Pos.Row), r.Bottom()-1)
	return p
}

func (r Rect) String() string {
	return fmt.Sprintf("%s%s", r.Pos, r.Size)
}

// Percent is a validated percentage in [0, 100]
type Percent uint8

// NewPercent validates n as a percentage
func NewPercent(n int) (Percent, error) {
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("percent %d: %w", n, ErrRange)
	}
	return Percent(n), nil
}

// Of resolves the percentage against n cells, rounding down
func (p Percent) Of(n int) int {
	return n * int(p) / 100
}

// PercentSize is a requested size as percentages of the parent's content area
type PercentSize struct {
	Width  Percent
	Height Percent
}

// NewPercentSize validates both components
func NewPercentSize(w, h int) (PercentSize, error) {
	pw, err := NewPercent(w)
	if err != nil {
		return PercentSize{}, fmt.Errorf("width: %w", err)
	}
	ph, err := NewPercent(h)
	if err != nil {
		return PercentSize{}, fmt.Errorf("height: %w", err)
	}
	return PercentSize{Width: pw, Height: ph}, nil
}

// MustPercentSize is NewPercentSize for constant inputs; panics on error
func MustPercentSize(w, h int) PercentSize {
	ps, err := NewPercentSize(w, h)
	if err != nil {
		panic(err)
	}
	return ps
}

// ParsePercentSize accepts "w,h" with optional % suffixes and spaces, e.g. "50%, 100%"
func ParsePercentSize(s string) (PercentSize, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return PercentSize{}, fmt.Errorf("percent size %q: %w", s, ErrRange)
	}
	var vals [2]int
	for i, part := range parts {
		part = strings.TrimSuffix(strings.TrimSpace(part), "%")
		n, err := strconv.Atoi(part)
		if err != nil {
			return PercentSize{}, fmt.Errorf("percent size %q: %w", s, ErrRange)
		}
		vals[i] = n
	}
	return NewPercentSize(vals[0], vals[1])
}

// Along returns the percentage on the given axis
func (ps PercentSize) Along(dir Direction) Percent {
	if dir == Vertical {
		return ps.Height
	}
	return ps.Width
}

// Of resolves both components against a size
func (ps PercentSize) Of(s Size) Size {
	return Size{Width: ps.Width.Of(s.Width), Height: ps.Height.Of(s.Height)}
}

func (ps PercentSize) String() string {
	return fmt.Sprintf("[w:%d%%, h:%d%%]", ps.Width, ps.Height)
}
