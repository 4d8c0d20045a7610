// Package layout resolves nested percentage-sized boxes inside a surface and
// collects the render pipeline components append while a box is open.
//
// A pass is Start, any number of balanced BoxStart/BoxEnd pairs, then End.
// Each child is sized as a percentage of its parent's content area and placed
// at the parent's insertion cursor, which advances along the parent's flow
// direction when the child closes. Siblings therefore never overlap.
package layout

import (
	"fmt"

	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
)

// SurfaceProps sets the bounds of a pass and the flow direction of top-level boxes
type SurfaceProps struct {
	Pos  geom.Position
	Size geom.Size
	Dir  geom.Direction
}

// SurfaceBounds is the absolute area of a pass, used by overlays that ignore box placement
type SurfaceBounds struct {
	Origin geom.Position
	Size   geom.Size
}

// Rect returns the bounds as a rectangle
func (sb SurfaceBounds) Rect() geom.Rect {
	return geom.Rect{Pos: sb.Origin, Size: sb.Size}
}

// Surface is the root layout context of one render pass
// Not safe for concurrent use; a pass runs on one goroutine
type Surface struct {
	Stylesheet *style.Stylesheet

	started bool
	bounds  SurfaceBounds
	root    *FlexBox
	stack   []*FlexBox
	closed  []FlexBox
}

// NewSurface creates a surface bound to a stylesheet
func NewSurface(ss *style.Stylesheet) *Surface {
	return &Surface{Stylesheet: ss}
}

// Start begins a pass over the given bounds
func (s *Surface) Start(props SurfaceProps) error {
	if s.started {
		return ErrSurfaceStarted
	}
	s.started = true
	s.bounds = SurfaceBounds{Origin: props.Pos, Size: props.Size}
	s.root = newFlexBox("", props.Dir, s.bounds.Rect(), nil)
	s.stack = s.stack[:0]
	s.closed = s.closed[:0]
	return nil
}

// Started reports whether a pass is in progress
func (s *Surface) Started() bool {
	return s.started
}

// BoxStart resolves props against the current box and opens a child
// On ErrSizeOverflow nothing is pushed and the parent is unchanged
func (s *Surface) BoxStart(props FlexBoxProps) (*FlexBox, error) {
	if !s.started {
		return nil, ErrSurfaceNotStarted
	}
	parent := s.top()
	rect, err := parent.place(props.RequestedSize)
	if err != nil {
		return nil, fmt.Errorf("box %q %s in %q (remaining %d): %w",
			props.ID, props.RequestedSize, parent.ID, parent.Remaining(), err)
	}
	box := newFlexBox(props.ID, props.Dir, rect, props.Styles)
	s.stack = append(s.stack, box)
	return box, nil
}

// BoxEnd closes the innermost open box, advances the parent's cursor and
// folds the box's pipeline into the parent's
func (s *Surface) BoxEnd() error {
	if !s.started || len(s.stack) == 0 {
		return ErrUnbalancedPop
	}
	s.closeTop()
	return nil
}

// closeTop pops the innermost box into its parent; the stack must not be empty
func (s *Surface) closeTop() {
	n := len(s.stack) - 1
	box := s.stack[n]
	s.stack[n] = nil
	s.stack = s.stack[:n]

	parent := s.top()
	parent.advance(box)
	parent.pipeline.Merge(box.pipeline)

	record := *box
	record.pipeline = nil
	s.closed = append(s.closed, record)
}

// End finishes the pass and returns the accumulated pipeline
// With open boxes it fails and the pass stays open so callers can unwind
func (s *Surface) End() (*render.Pipeline, error) {
	if !s.started {
		return nil, ErrSurfaceNotStarted
	}
	if len(s.stack) > 0 {
		return nil, fmt.Errorf("%d open, innermost %q: %w", len(s.stack), s.stack[len(s.stack)-1].ID, ErrLayoutUnbalanced)
	}
	p := s.root.pipeline
	s.started = false
	s.root = nil
	return p, nil
}

// Current returns the innermost open box, nil outside any box
func (s *Surface) Current() *FlexBox {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of open boxes
func (s *Surface) Depth() int {
	return len(s.stack)
}

// Bounds returns the bounds of the current pass
func (s *Surface) Bounds() SurfaceBounds {
	return s.bounds
}

// Remaining returns the unconsumed span of the current container along its flow axis
func (s *Surface) Remaining() int {
	if !s.started {
		return 0
	}
	return s.top().Remaining()
}

// Render appends p to the innermost open box, or the surface when none is open
func (s *Surface) Render(p *render.Pipeline) {
	if !s.started || p == nil {
		return
	}
	s.top().pipeline.Merge(p)
}

// Closed returns the boxes closed so far in this pass, in close order
func (s *Surface) Closed() []FlexBox {
	return s.closed
}

// top returns the innermost open box or the root
func (s *Surface) top() *FlexBox {
	if len(s.stack) == 0 {
		return s.root
	}
	return s.stack[len(s.stack)-1]
}
