package layout

import (
	"errors"

	"github.com/lixenwraith/flexterm/render"
	"github.com/lixenwraith/flexterm/style"
)

// BoxScope is an open box that must be closed exactly once
type BoxScope struct {
	surface *Surface
	box     *FlexBox
	closed  bool
}

// OpenBox starts a box and returns its scope
// Pair with defer scope.Close() so the box closes on every exit path
func (s *Surface) OpenBox(props FlexBoxProps) (*BoxScope, error) {
	box, err := s.BoxStart(props)
	if err != nil {
		return nil, err
	}
	return &BoxScope{surface: s, box: box}, nil
}

// Box returns the opened box
func (bs *BoxScope) Box() *FlexBox {
	return bs.box
}

// Close ends the box; later calls are no-ops
func (bs *BoxScope) Close() error {
	if bs == nil || bs.closed {
		return nil
	}
	bs.closed = true
	return bs.surface.BoxEnd()
}

// Box runs fn inside a new box; the box closes even when fn fails or panics
func (s *Surface) Box(props FlexBoxProps, fn func(box *FlexBox) error) (err error) {
	scope, err := s.OpenBox(props)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, scope.Close())
	}()
	if fn == nil {
		return nil
	}
	return fn(scope.box)
}

// Run executes a whole pass on a fresh surface
// End runs on every exit path, including a panic in fn. A failure from fn is
// returned alongside any balance error.
func Run(ss *style.Stylesheet, props SurfaceProps, fn func(s *Surface) error) (*render.Pipeline, error) {
	s := NewSurface(ss)
	if err := s.Start(props); err != nil {
		return nil, err
	}
	returned := false
	defer func() {
		if !returned {
			s.unwind()
			_, _ = s.End()
		}
	}()

	fnErr := fn(s)
	returned = true
	if fnErr != nil {
		s.unwind()
	}
	p, endErr := s.End()
	if err := errors.Join(fnErr, endErr); err != nil {
		return nil, err
	}
	return p, nil
}

// unwind closes every open box, innermost first
func (s *Surface) unwind() {
	for s.Depth() > 0 {
		s.closeTop()
	}
}
