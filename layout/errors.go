package layout

import "errors"

var (
	// ErrSizeOverflow reports a child request that does not fit the parent's remaining space
	ErrSizeOverflow = errors.New("requested size exceeds remaining space")

	// ErrUnbalancedPop reports BoxEnd with no open box
	ErrUnbalancedPop = errors.New("box end without open box")

	// ErrLayoutUnbalanced reports End while boxes are still open
	ErrLayoutUnbalanced = errors.New("surface ended with open boxes")

	// ErrSurfaceStarted reports Start on a surface already in a pass
	ErrSurfaceStarted = errors.New("surface already started")

	// ErrSurfaceNotStarted reports box or end calls outside a pass
	ErrSurfaceNotStarted = errors.New("surface not started")
)
