package tree

import "testing"

// threeGenerations builds grandparents a+b, their child c married to d,
// and grandchild e.
func threeGenerations() *Data {
	return &Data{
		Nodes: []Node{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
		},
		Edges: []Edge{
			{From: "a", To: "b", Type: EdgeSpouse},
			{From: "a", To: "c", Type: EdgeParent},
			{From: "b", To: "c", Type: EdgeParent},
			{From: "c", To: "d", Type: EdgeSpouse},
			{From: "c", To: "e", Type: EdgeParent},
			{From: "d", To: "e", Type: EdgeParent},
		},
	}
}

func TestBuildRelations_SpouseSymmetry(t *testing.T) {
	rel := BuildRelations(threeGenerations())

	if got := rel.Spouses["a"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("Spouses[a] = %v, want [b]", got)
	}
	if got := rel.Spouses["b"]; len(got) != 1 || got[0] != "a" {
		t.Errorf("Spouses[b] = %v, want [a]", got)
	}
}

func TestRelations_AncestorsDescendants(t *testing.T) {
	rel := BuildRelations(threeGenerations())

	anc := rel.Ancestors("e")
	for _, id := range []string{"a", "b", "c", "d"} {
		if !anc[id] {
			t.Errorf("Ancestors(e) missing %s", id)
		}
	}
	if anc["e"] {
		t.Error("Ancestors(e) should not include e itself")
	}

	desc := rel.Descendants("a")
	for _, id := range []string{"c", "e"} {
		if !desc[id] {
			t.Errorf("Descendants(a) missing %s", id)
		}
	}
	if desc["d"] {
		t.Error("Descendants(a) should not include the in-law d")
	}
}

func TestRelations_Immediate(t *testing.T) {
	rel := BuildRelations(threeGenerations())

	im := rel.Immediate("c")
	for _, id := range []string{"c", "a", "b", "d", "e"} {
		if !im[id] {
			t.Errorf("Immediate(c) missing %s", id)
		}
	}
}

func TestRelations_CycleSafe(t *testing.T) {
	// Corrupt data where a is its own grandparent must not hang the walk.
	data := &Data{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{From: "a", To: "b", Type: EdgeParent},
			{From: "b", To: "a", Type: EdgeParent},
		},
	}
	rel := BuildRelations(data)

	anc := rel.Ancestors("a")
	if !anc["b"] {
		t.Error("Ancestors(a) should include b")
	}
}
