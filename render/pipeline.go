package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/geom"
)

// Op is a single paint instruction: Text, Fill or Caret
type Op interface {
	isOp()
}

// Text prints a string starting at Pos, one cell per display column
type Text struct {
	Pos   geom.Position
	Text  string
	Style tcell.Style
}

// Fill paints every cell of Rect with Rune
type Fill struct {
	Rect  geom.Rect
	Rune  rune
	Style tcell.Style
}

// Caret places the terminal cursor. The last caret painted wins
type Caret struct {
	Pos geom.Position
}

func (Text) isOp()  {}
func (Fill) isOp()  {}
func (Caret) isOp() {}

// Pipeline accumulates paint instructions per z-order group during one render pass
// Append-only; order within a group is call order
type Pipeline struct {
	groups map[ZOrder][]Op
	count  int
}

// NewPipeline returns an empty pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{groups: make(map[ZOrder][]Op)}
}

// Push appends ops to group z
func (p *Pipeline) Push(z ZOrder, ops ...Op) {
	if len(ops) == 0 {
		return
	}
	if p.groups == nil {
		p.groups = make(map[ZOrder][]Op)
	}
	p.groups[z] = append(p.groups[z], ops...)
	p.count += len(ops)
}

// Merge appends every group of o after the existing entries of p
func (p *Pipeline) Merge(o *Pipeline) {
	if o == nil {
		return
	}
	for _, z := range zOrders {
		p.Push(z, o.groups[z]...)
	}
}

// Len returns the total number of ops across groups
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return p.count
}

// Ops returns the ops of one group; callers must not modify the slice
func (p *Pipeline) Ops(z ZOrder) []Op {
	if p == nil {
		return nil
	}
	return p.groups[z]
}

// Each visits ops in paint order: ascending z-order, then append order
func (p *Pipeline) Each(fn func(z ZOrder, op Op)) {
	if p == nil {
		return
	}
	for _, z := range zOrders {
		for _, op := range p.groups[z] {
			fn(z, op)
		}
	}
}

// Clone returns an independent copy
func (p *Pipeline) Clone() *Pipeline {
	c := NewPipeline()
	c.Merge(p)
	return c
}
