package nodelink

import (
	"strings"
	"testing"

	"github.com/sbhuiyan/kintree/pkg/tree"
)

func family() *tree.Data {
	return &tree.Data{
		Nodes: []tree.Node{
			{ID: "a", Name: "Abe", Gender: tree.GenderMale, BirthYear: 1921, DeathYear: 1984, Status: tree.StatusDeceased},
			{ID: "b", Name: "Bea", Gender: tree.GenderFemale},
			{ID: "c", Name: "Cal", Gender: tree.GenderMale},
		},
		Edges: []tree.Edge{
			{From: "a", To: "b", Type: tree.EdgeSpouse},
			{From: "a", To: "c", Type: tree.EdgeParent},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(family(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, `"a" [label="Abe"`) {
		t.Error("missing node label for a")
	}
	if !strings.Contains(dot, fillFemale) {
		t.Error("female fill color not applied")
	}
	if !strings.Contains(dot, `"a" -> "b" [dir=none, style=dashed, constraint=false];`) {
		t.Error("spouse edge should be undirected and dashed")
	}
	if !strings.Contains(dot, `{rank=same; "a"; "b"}`) {
		t.Error("spouses should be pinned to the same rank")
	}
	if !strings.Contains(dot, `"a" -> "c";`) {
		t.Error("missing parent edge")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(family(), Options{Detailed: true})

	if !strings.Contains(dot, "1921 – 1984") {
		t.Error("detailed label missing lifespan")
	}
	if !strings.Contains(dot, "deceased") {
		t.Error("detailed label missing status")
	}
}
