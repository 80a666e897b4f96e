package layout

import "github.com/sbhuiyan/kintree/pkg/tree"

// PositionedNode is a tree.Node augmented with world-space placement and
// session-derived display state. Placement fields are written once per
// layout run; display-state fields are overwritten by the visibility
// resolver without re-running layout.
type PositionedNode struct {
	tree.Node

	X, Y          float64
	Width, Height float64
	Generation    int
	SpouseID      string // paired node in the family unit, if any

	// Display state, owned by pkg/view.
	Visible       bool
	Opacity       float64
	DirectLineage bool
	Immediate     bool
}

// CenterX returns the horizontal center of the node.
func (n *PositionedNode) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node.
func (n *PositionedNode) CenterY() float64 { return n.Y + n.Height/2 }

// Contains reports whether the world-space point (x, y) falls inside the node.
func (n *PositionedNode) Contains(x, y float64) bool {
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// Bounds is the axis-aligned bounding box of all placed nodes.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the horizontal span of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal center of the bounds.
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the vertical center of the bounds.
func (b Bounds) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Empty reports whether the bounds cover no area (empty or single-point
// layouts). The fit-view calculation treats this as a degenerate case.
func (b Bounds) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Result is the output of one layout run.
type Result struct {
	// Nodes maps node ID to its placement. Only nodes reachable from a
	// root family unit are present; dangling edge targets are absent.
	Nodes map[string]*PositionedNode

	// Order lists node IDs in placement order for deterministic iteration.
	Order []string

	// Bounds covers all placed nodes; zero-valued for an empty graph.
	Bounds Bounds

	// Generations lists the generation numbers present, ascending from 0.
	Generations []int

	// Design is the token profile the layout was computed with.
	Design Design
}

// Walk calls fn for every placed node in placement order.
func (r *Result) Walk(fn func(*PositionedNode)) {
	for _, id := range r.Order {
		fn(r.Nodes[id])
	}
}
