package tree

import (
	"strings"
	"testing"
)

func TestParseMembers_SpouseDedup(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "a", Name: "Abe", Gender: GenderMale, SpouseIDs: []string{"b"}},
		{ID: "b", Name: "Bea", Gender: GenderFemale, SpouseIDs: []string{"a"}},
	}}

	data := ParseMembers(doc)

	spouses := 0
	for _, e := range data.Edges {
		if e.Type == EdgeSpouse {
			spouses++
		}
	}
	if spouses != 1 {
		t.Errorf("expected 1 spouse edge for a mutual pair, got %d", spouses)
	}
}

func TestParseMembers_ParentEdges(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "a", Name: "Abe", Gender: GenderMale, ChildrenIDs: []string{"c"}},
		{ID: "b", Name: "Bea", Gender: GenderFemale, ChildrenIDs: []string{"c"}},
		{ID: "c", Name: "Cal", Gender: GenderMale},
	}}

	data := ParseMembers(doc)

	var parents []string
	for _, e := range data.Edges {
		if e.Type == EdgeParent && e.To == "c" {
			parents = append(parents, e.From)
		}
	}
	if len(parents) != 2 {
		t.Fatalf("expected 2 parent edges into c, got %v", parents)
	}
}

func TestParseMembers_PreservesOrderAndDefaults(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "z", Name: "Zoe", Gender: GenderFemale},
		{ID: "a", Name: "Abe", Gender: GenderMale},
	}}

	data := ParseMembers(doc)

	if got := data.NodeIDs(); got[0] != "z" || got[1] != "a" {
		t.Errorf("input order not preserved: %v", got)
	}
	if data.Meta.FamilyName != "Family" {
		t.Errorf("expected default family name, got %q", data.Meta.FamilyName)
	}
	if data.Meta.Version != 1 {
		t.Errorf("expected version 1, got %d", data.Meta.Version)
	}
}

func TestNewMemberID(t *testing.T) {
	id := NewMemberID()
	if !strings.HasPrefix(id, "m-") {
		t.Errorf("generated ID %q missing m- prefix", id)
	}
	if id == NewMemberID() {
		t.Error("generated IDs should be unique")
	}
}

func TestNode_Lifespan(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"both years", Node{BirthYear: 1921, DeathYear: 1984}, "1921 – 1984"},
		{"birth only", Node{BirthYear: 1950}, "b. 1950"},
		{"death only", Node{DeathYear: 1999}, "d. 1999"},
		{"neither", Node{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Lifespan(); got != tt.want {
				t.Errorf("Lifespan() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestData_Search(t *testing.T) {
	data := Data{Nodes: []Node{
		{ID: "1", Name: "Anna Kowalski"},
		{ID: "2", Name: "Johanna Berg"},
		{ID: "3", Name: "Ann Hill"},
		{ID: "4", Name: "Bert Stone"},
	}}

	got := data.Search("ann")
	want := []string{"1", "3", "2"}
	if len(got) != len(want) {
		t.Fatalf("Search(ann) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Search(ann)[%d] = %q, want %q (prefix matches sort first)", i, got[i], want[i])
		}
	}

	if got := data.Search("  "); got != nil {
		t.Errorf("blank query should match nothing, got %v", got)
	}
}
