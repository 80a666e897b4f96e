package tree_test

import (
	"fmt"

	"github.com/sbhuiyan/kintree/pkg/tree"
)

func ExampleParseMembers() {
	doc := tree.Document{
		FamilyName: "Rahman",
		Members: []tree.Member{
			{ID: "a", Name: "Abdul", Gender: "male", SpouseIDs: []string{"b"}, ChildrenIDs: []string{"c"}},
			{ID: "b", Name: "Fatima", Gender: "female", SpouseIDs: []string{"a"}, ChildrenIDs: []string{"c"}},
			{ID: "c", Name: "Karim", Gender: "male"},
		},
	}

	data := tree.ParseMembers(doc)
	fmt.Println("members:", len(data.Nodes))
	fmt.Println("edges:", len(data.Edges))
	// Output:
	// members: 3
	// edges: 3
}

func ExampleRelations_Ancestors() {
	doc := tree.Document{
		Members: []tree.Member{
			{ID: "a", Name: "Abdul", Gender: "male", ChildrenIDs: []string{"b"}},
			{ID: "b", Name: "Karim", Gender: "male", ChildrenIDs: []string{"c"}},
			{ID: "c", Name: "Imran", Gender: "male"},
		},
	}
	data := tree.ParseMembers(doc)
	rel := tree.BuildRelations(&data)

	ancestors := rel.Ancestors("c")
	fmt.Println("ancestors of c:", len(ancestors))
	fmt.Println("includes a:", ancestors["a"])
	// Output:
	// ancestors of c: 2
	// includes a: true
}

func ExampleData_Search() {
	doc := tree.Document{
		Members: []tree.Member{
			{ID: "m-1", Name: "Anna", Gender: "female"},
			{ID: "m-2", Name: "Marianna", Gender: "female"},
			{ID: "m-3", Name: "Bob", Gender: "male"},
		},
	}
	data := tree.ParseMembers(doc)

	for _, id := range data.Search("ann") {
		fmt.Println(id)
	}
	// Output:
	// m-1
	// m-2
}
