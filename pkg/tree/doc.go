// Package tree defines the family graph data model and its operations.
//
// # Overview
//
// The package covers everything up to (but not including) layout:
//
//   - Parsing raw member records into a normalized node/edge graph
//   - Strict schema validation of member records
//   - Relationship indexes (spouse, parent, child) with ancestor and
//     descendant traversals
//   - JSON serialization with round-trip fidelity
//   - Name and ID search
//
// # Data Model
//
// A family graph is a set of [Node] values connected by [Edge] values.
// Parent edges are directed parent→child. Spouse edges are logically
// symmetric and stored once per unordered pair.
//
// # Usage
//
// Parse a raw member document and build the relationship index:
//
//	data, err := tree.ParseMembers(doc)
//	if err != nil {
//	    return err
//	}
//	rel := tree.BuildRelations(data)
//	ancestors := rel.Ancestors("m17")
package tree
