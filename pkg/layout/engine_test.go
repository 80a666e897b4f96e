package layout

import (
	"testing"

	"github.com/sbhuiyan/kintree/pkg/tree"
)

func desktop(t *testing.T) Design {
	t.Helper()
	d, err := DesignFor(DeviceDesktop)
	if err != nil {
		t.Fatalf("DesignFor(desktop): %v", err)
	}
	return d
}

// couple builds the smallest interesting tree: spouses a+b with child c.
func couple() *tree.Data {
	return &tree.Data{
		Nodes: []tree.Node{
			{ID: "a", Name: "Abe", Gender: tree.GenderMale},
			{ID: "b", Name: "Bea", Gender: tree.GenderFemale},
			{ID: "c", Name: "Cal", Gender: tree.GenderMale},
		},
		Edges: []tree.Edge{
			{From: "a", To: "b", Type: tree.EdgeSpouse},
			{From: "a", To: "c", Type: tree.EdgeParent},
			{From: "b", To: "c", Type: tree.EdgeParent},
		},
	}
}

func TestCompute_FamilyUnitPlacement(t *testing.T) {
	d := desktop(t)
	res := Compute(couple(), d)

	if len(res.Order) != 3 {
		t.Fatalf("expected 3 placed nodes, got %v", res.Order)
	}

	a, b, c := res.Nodes["a"], res.Nodes["b"], res.Nodes["c"]

	// Desktop profile: node 180 wide, spouse gap 24, padding 60.
	if a.X != 60 {
		t.Errorf("a.X = %v, want 60", a.X)
	}
	if want := a.X + d.NodeWidth + d.SpouseGap; b.X != want {
		t.Errorf("b.X = %v, want %v", b.X, want)
	}

	if a.Generation != 0 || b.Generation != 0 {
		t.Errorf("spouses should share generation 0, got %d and %d", a.Generation, b.Generation)
	}
	if c.Generation != 1 {
		t.Errorf("child generation = %d, want 1", c.Generation)
	}
	if c.Y != d.GenerationY(1) {
		t.Errorf("c.Y = %v, want %v", c.Y, d.GenerationY(1))
	}

	// The only child sits centered under the couple.
	familyCenter := (a.X + b.X + d.NodeWidth) / 2
	if c.CenterX() != familyCenter {
		t.Errorf("child center %v, want family center %v", c.CenterX(), familyCenter)
	}

	if a.SpouseID != "b" || b.SpouseID != "a" {
		t.Errorf("spouse pairing not recorded: a→%q b→%q", a.SpouseID, b.SpouseID)
	}
}

func TestCompute_SpouseNotDoubleRooted(t *testing.T) {
	// b has no parents either, but must be absorbed into a's family unit
	// instead of founding a second tree.
	res := Compute(couple(), desktop(t))

	for _, id := range res.Order {
		if res.Nodes[id].Generation < 0 {
			t.Fatalf("negative generation for %s", id)
		}
	}
	seen := make(map[string]int)
	for _, id := range res.Order {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("node %s placed %d times", id, n)
		}
	}
	if res.Nodes["b"].Generation != 0 {
		t.Errorf("absorbed spouse should stay at generation 0, got %d", res.Nodes["b"].Generation)
	}
}

func TestCompute_SharedChildPlacedOnce(t *testing.T) {
	res := Compute(couple(), desktop(t))
	if len(res.Order) != 3 {
		t.Errorf("shared child duplicated: %v", res.Order)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	d := desktop(t)
	first := Compute(couple(), d)
	second := Compute(couple(), d)

	if len(first.Order) != len(second.Order) {
		t.Fatal("placement order length differs between runs")
	}
	for i := range first.Order {
		if first.Order[i] != second.Order[i] {
			t.Fatalf("placement order differs at %d: %s vs %s", i, first.Order[i], second.Order[i])
		}
	}
	for id, n := range first.Nodes {
		m := second.Nodes[id]
		if n.X != m.X || n.Y != m.Y {
			t.Errorf("node %s moved between runs: (%v,%v) vs (%v,%v)", id, n.X, n.Y, m.X, m.Y)
		}
	}
}

func TestCompute_WideChildrenCenterParents(t *testing.T) {
	d := desktop(t)
	data := couple()
	data.Nodes = append(data.Nodes, tree.Node{ID: "e", Name: "Eve", Gender: tree.GenderFemale})
	data.Edges = append(data.Edges,
		tree.Edge{From: "a", To: "e", Type: tree.EdgeParent},
		tree.Edge{From: "b", To: "e", Type: tree.EdgeParent},
	)

	res := Compute(data, d)
	c, e := res.Nodes["c"], res.Nodes["e"]

	// Two leaf children: 180 + 90 (group gap) + 180 = 450, wider than the
	// 384 family unit, so the parents center over the children block.
	childrenCenter := (c.X + e.X + d.NodeWidth) / 2
	a, b := res.Nodes["a"], res.Nodes["b"]
	familyCenter := (a.X + b.X + d.NodeWidth) / 2
	if familyCenter != childrenCenter {
		t.Errorf("family center %v, children center %v", familyCenter, childrenCenter)
	}

	if gap := e.X - (c.X + d.NodeWidth); gap != d.GroupGap() {
		t.Errorf("sibling subtree gap = %v, want %v", gap, d.GroupGap())
	}
}

func TestCompute_MultipleForests(t *testing.T) {
	d := desktop(t)
	data := &tree.Data{
		Nodes: []tree.Node{{ID: "x"}, {ID: "y"}},
	}

	res := Compute(data, d)
	x, y := res.Nodes["x"], res.Nodes["y"]

	if x.Generation != 0 || y.Generation != 0 {
		t.Errorf("unrelated roots should both be generation 0")
	}
	if want := x.X + d.NodeWidth + d.GenerationGap; y.X != want {
		t.Errorf("second forest at %v, want %v", y.X, want)
	}
}

func TestCompute_DanglingReferencesIgnored(t *testing.T) {
	data := &tree.Data{
		Nodes: []tree.Node{{ID: "a"}},
		Edges: []tree.Edge{
			{From: "a", To: "ghost", Type: tree.EdgeSpouse},
			{From: "a", To: "phantom", Type: tree.EdgeParent},
		},
	}

	res := Compute(data, desktop(t))
	if len(res.Order) != 1 {
		t.Fatalf("expected only the real node placed, got %v", res.Order)
	}
	if res.Nodes["a"].SpouseID != "" {
		t.Errorf("dangling spouse recorded: %q", res.Nodes["a"].SpouseID)
	}
}

// twoBranches extends couple() with a second child, spouses for both
// children, and a grandchild under each branch.
func twoBranches() *tree.Data {
	data := couple()
	data.Nodes = append(data.Nodes,
		tree.Node{ID: "d", Name: "Dot", Gender: tree.GenderFemale},
		tree.Node{ID: "cw", Name: "Cleo", Gender: tree.GenderFemale},
		tree.Node{ID: "dw", Name: "Dan", Gender: tree.GenderMale},
		tree.Node{ID: "g1", Name: "Gus", Gender: tree.GenderMale},
		tree.Node{ID: "g2", Name: "Gia", Gender: tree.GenderFemale},
	)
	data.Edges = append(data.Edges,
		tree.Edge{From: "a", To: "d", Type: tree.EdgeParent},
		tree.Edge{From: "b", To: "d", Type: tree.EdgeParent},
		tree.Edge{From: "c", To: "cw", Type: tree.EdgeSpouse},
		tree.Edge{From: "d", To: "dw", Type: tree.EdgeSpouse},
		tree.Edge{From: "c", To: "g1", Type: tree.EdgeParent},
		tree.Edge{From: "d", To: "g2", Type: tree.EdgeParent},
	)
	return data
}

func TestCompute_SiblingSubtreesDoNotOverlap(t *testing.T) {
	d := desktop(t)
	data := twoBranches()
	res := Compute(data, d)
	rel := tree.BuildRelations(data)

	// Every node in c's branch must sit strictly left of every node in
	// d's branch, spouses included.
	branch := func(root string) []string {
		ids := []string{root}
		if sp := res.Nodes[root].SpouseID; sp != "" {
			ids = append(ids, sp)
		}
		for id := range rel.Descendants(root) {
			ids = append(ids, id)
		}
		return ids
	}

	var leftMax float64
	rightMin := res.Bounds.MaxX
	for _, id := range branch("c") {
		if right := res.Nodes[id].X + d.NodeWidth; right > leftMax {
			leftMax = right
		}
	}
	for _, id := range branch("d") {
		if res.Nodes[id].X < rightMin {
			rightMin = res.Nodes[id].X
		}
	}
	if leftMax > rightMin {
		t.Errorf("branches overlap: left edge ends at %v, right edge starts at %v", leftMax, rightMin)
	}
}

func TestCompute_GenerationMonotonic(t *testing.T) {
	data := twoBranches()
	res := Compute(data, desktop(t))

	for _, e := range data.Edges {
		if e.Type != tree.EdgeParent {
			continue
		}
		p, pok := res.Nodes[e.From]
		c, cok := res.Nodes[e.To]
		if !pok || !cok {
			continue
		}
		if c.Generation != p.Generation+1 {
			t.Errorf("%s→%s: child generation %d, parent %d", e.From, e.To, c.Generation, p.Generation)
		}
	}
}

func TestCompute_BoundsAndGenerations(t *testing.T) {
	d := desktop(t)
	res := Compute(couple(), d)

	b := res.Bounds
	if b.MinX != 60 || b.MinY != d.GenerationY(0) {
		t.Errorf("bounds origin (%v,%v), want (60,%v)", b.MinX, b.MinY, d.GenerationY(0))
	}
	if b.MaxY != d.GenerationY(1)+d.NodeHeight {
		t.Errorf("bounds MaxY = %v, want %v", b.MaxY, d.GenerationY(1)+d.NodeHeight)
	}
	if len(res.Generations) != 2 || res.Generations[0] != 0 || res.Generations[1] != 1 {
		t.Errorf("Generations = %v, want [0 1]", res.Generations)
	}
}

func TestCompute_Empty(t *testing.T) {
	res := Compute(&tree.Data{}, desktop(t))
	if len(res.Order) != 0 {
		t.Errorf("empty graph placed nodes: %v", res.Order)
	}
	if !res.Bounds.Empty() {
		t.Errorf("empty graph should have empty bounds")
	}
}
