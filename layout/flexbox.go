package layout

import (
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
)

// FlexBoxID names a box, unique within one surface pass
type FlexBoxID string

// FlexBoxProps is the request passed to BoxStart
type FlexBoxProps struct {
	ID            FlexBoxID
	Dir           geom.Direction // axis children flow along
	RequestedSize geom.PercentSize
	Styles        []style.Style
}

// FlexBox is a resolved region. Fields are fixed at BoxStart
type FlexBox struct {
	ID     FlexBoxID
	Dir    geom.Direction
	Origin geom.Position
	Size   geom.Size
	Styles []style.Style

	// Content area after padding; children resolve against it
	ContentOrigin geom.Position
	ContentSize   geom.Size

	cursor   int // cells consumed along Dir
	used     int // percent requested along Dir
	pipeline *render.Pipeline
}

func newFlexBox(id FlexBoxID, dir geom.Direction, bounds geom.Rect, styles []style.Style) *FlexBox {
	content := bounds.Inset(style.Padding(styles))
	return &FlexBox{
		ID:            id,
		Dir:           dir,
		Origin:        bounds.Pos,
		Size:          bounds.Size,
		Styles:        styles,
		ContentOrigin: content.Pos,
		ContentSize:   content.Size,
		pipeline:      render.NewPipeline(),
	}
}

// Rect returns the outer rectangle
func (b *FlexBox) Rect() geom.Rect {
	return geom.Rect{Pos: b.Origin, Size: b.Size}
}

// ContentRect returns the rectangle children and components draw into
func (b *FlexBox) ContentRect() geom.Rect {
	return geom.Rect{Pos: b.ContentOrigin, Size: b.ContentSize}
}

// Remaining returns the unconsumed content span along Dir
func (b *FlexBox) Remaining() int {
	return b.ContentSize.Along(b.Dir) - b.cursor
}

// Style returns the merged box style
func (b *FlexBox) Style() style.Style {
	return style.Merge(b.Styles)
}

// place resolves a child request against this box and reserves its span
func (b *FlexBox) place(ps geom.PercentSize) (geom.Rect, error) {
	pct := int(ps.Along(b.Dir))
	size := ps.Of(b.ContentSize)
	extent := size.Along(b.Dir)
	if b.used+pct > 100 || extent > b.Remaining() {
		return geom.Rect{}, ErrSizeOverflow
	}
	b.used += pct
	return geom.Rect{Pos: b.ContentOrigin.Advance(b.Dir, b.cursor), Size: size}, nil
}

// advance moves the insertion cursor past a closed child
func (b *FlexBox) advance(child *FlexBox) {
	b.cursor += child.Size.Along(b.Dir)
}

// Props builds FlexBoxProps, resolving style tags against ss
// Percentages outside [0, 100] fail with geom.ErrRange
func Props(ss *style.Stylesheet, id FlexBoxID, dir geom.Direction, w, h int, tags ...string) (FlexBoxProps, error) {
	ps, err := geom.NewPercentSize(w, h)
	if err != nil {
		return FlexBoxProps{}, err
	}
	return FlexBoxProps{ID: id, Dir: dir, RequestedSize: ps, Styles: ss.Resolve(tags...)}, nil
}
