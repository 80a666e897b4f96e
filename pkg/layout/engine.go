package layout

import (
	"math"

	"github.com/sbhuiyan/kintree/pkg/tree"
)

// Compute lays out a family graph with the given design profile.
// The result is deterministic for a fixed input.
func Compute(data *tree.Data, design Design) *Result {
	p := &placer{
		design: design,
		rel:    tree.BuildRelations(data),
		nodes:  make(map[string]*tree.Node, len(data.Nodes)),
		placed: make(map[string]bool),
		result: &Result{
			Nodes:  make(map[string]*PositionedNode, len(data.Nodes)),
			Design: design,
		},
	}
	for i := range data.Nodes {
		p.nodes[data.Nodes[i].ID] = &data.Nodes[i]
	}

	nextTreeX := design.Padding
	for _, rootID := range p.roots(data) {
		width := p.place(rootID, 0, nextTreeX)
		nextTreeX += width + design.GenerationGap
	}

	p.finish()
	return p.result
}

// placer is the traversal context for one layout run. The placed set
// guards against re-entry when a node is reachable through either partner
// of a spouse pair; keeping it here rather than in package state makes
// the recursion auditable and runs independent.
type placer struct {
	design Design
	rel    *tree.Relations
	nodes  map[string]*tree.Node
	placed map[string]bool
	result *Result
}

// roots returns the layout roots in input order. A node qualifies when it
// has no parent edges; a candidate whose spouse already claimed a tree is
// absorbed into that tree's family unit instead of founding its own.
func (p *placer) roots(data *tree.Data) []string {
	claimed := make(map[string]bool)
	var roots []string

	for _, n := range data.Nodes {
		if len(p.rel.Parents[n.ID]) > 0 || claimed[n.ID] {
			continue
		}

		spouseClaimed := false
		for _, s := range p.rel.Spouses[n.ID] {
			if claimed[s] {
				spouseClaimed = true
				break
			}
		}
		if spouseClaimed {
			continue
		}

		roots = append(roots, n.ID)
		claimed[n.ID] = true
		for _, s := range p.rel.Spouses[n.ID] {
			claimed[s] = true
		}
	}

	return roots
}

// familyUnit returns the IDs making up a person's family unit: the person
// followed by all spouses. Spouse edges pointing at nonexistent nodes are
// dropped here, which keeps unit widths consistent with what gets placed.
func (p *placer) familyUnit(rootID string) []string {
	family := []string{rootID}
	for _, s := range p.rel.Spouses[rootID] {
		if _, ok := p.nodes[s]; ok {
			family = append(family, s)
		}
	}
	return family
}

// familyWidth is the horizontal span of n family-unit members laid side by
// side with spouse gaps.
func (p *placer) familyWidth(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*p.design.NodeWidth + float64(n-1)*p.design.SpouseGap
}

// childrenOf returns the deduplicated union of all children across a
// family unit, in first-seen order. A child shared by both partners is
// counted once.
func (p *placer) childrenOf(family []string) []string {
	var children []string
	seen := make(map[string]bool)
	for _, pid := range family {
		for _, c := range p.rel.Children[pid] {
			if _, ok := p.nodes[c]; !ok {
				continue // dangling child reference
			}
			if !seen[c] {
				seen[c] = true
				children = append(children, c)
			}
		}
	}
	return children
}

// measure computes the width of the subtree rooted at a person's family
// unit without placing anything: the wider of the unit itself and the
// concatenated child subtrees. Widths are recomputed for every ancestor
// call rather than cached.
func (p *placer) measure(rootID string) float64 {
	family := p.familyUnit(rootID)
	familyWidth := p.familyWidth(len(family))

	children := p.childrenOf(family)
	if len(children) == 0 {
		return familyWidth
	}

	var childrenWidth float64
	for i, c := range children {
		childrenWidth += p.measure(c)
		if i < len(children)-1 {
			childrenWidth += p.design.GroupGap()
		}
	}

	return math.Max(familyWidth, childrenWidth)
}

// place positions the family unit rooted at rootID within the horizontal
// band starting at startX and recursively places its children one
// generation below. Returns the band width consumed. Re-entry through an
// already placed node (reached via the other spouse) is a no-op.
func (p *placer) place(rootID string, generation int, startX float64) float64 {
	if p.placed[rootID] {
		return 0
	}

	family := p.familyUnit(rootID)
	for _, id := range family {
		p.placed[id] = true
	}
	familyWidth := p.familyWidth(len(family))

	children := p.childrenOf(family)
	childWidths := make([]float64, len(children))
	var childrenWidth float64
	for i, c := range children {
		childWidths[i] = p.measure(c)
		childrenWidth += childWidths[i]
		if i < len(children)-1 {
			childrenWidth += p.design.GroupGap()
		}
	}

	totalWidth := math.Max(familyWidth, childrenWidth)
	centerX := startX + totalWidth/2

	// Family unit centered in the band.
	x := centerX - familyWidth/2
	for _, id := range family {
		node := p.nodes[id]

		spouseID := ""
		if len(family) > 1 {
			for _, other := range family {
				if other != id {
					spouseID = other
					break
				}
			}
		}

		p.result.Nodes[id] = &PositionedNode{
			Node:       *node,
			X:          x,
			Y:          p.design.GenerationY(generation),
			Width:      p.design.NodeWidth,
			Height:     p.design.NodeHeight,
			Generation: generation,
			SpouseID:   spouseID,
			Visible:    true,
			Opacity:    FullOpacity,
		}
		p.result.Order = append(p.result.Order, id)
		x += p.design.NodeWidth + p.design.SpouseGap
	}

	// Children block centered under the same midpoint.
	if len(children) > 0 {
		childX := centerX - childrenWidth/2
		for i, c := range children {
			p.place(c, generation+1, childX)
			childX += childWidths[i] + p.design.GroupGap()
		}
	}

	return totalWidth
}

// finish computes bounds and the generation list over all placed nodes.
func (p *placer) finish() {
	r := p.result
	if len(r.Order) == 0 {
		return
	}

	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	maxGen := 0
	for _, id := range r.Order {
		n := r.Nodes[id]
		b.MinX = math.Min(b.MinX, n.X)
		b.MaxX = math.Max(b.MaxX, n.X+n.Width)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxY = math.Max(b.MaxY, n.Y+n.Height)
		if n.Generation > maxGen {
			maxGen = n.Generation
		}
	}
	r.Bounds = b

	r.Generations = make([]int, maxGen+1)
	for i := range r.Generations {
		r.Generations[i] = i
	}
}
