package tree

import (
	"time"

	"github.com/google/uuid"
)

// Member is a raw member record as exported by the portal backend:
// relationships are adjacency lists on the member itself.
type Member struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Gender      string   `json:"gender" bson:"gender"`
	SpouseIDs   []string `json:"spouseIds,omitempty" bson:"spouse_ids,omitempty"`
	ChildrenIDs []string `json:"childrenIds,omitempty" bson:"children_ids,omitempty"`
	BirthYear   int      `json:"birthYear,omitempty" bson:"birth_year,omitempty"`
	DeathYear   int      `json:"deathYear,omitempty" bson:"death_year,omitempty"`
	Status      string   `json:"status,omitempty" bson:"status,omitempty"`
	Notes       string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Document is the raw family document consumed by [ParseMembers].
type Document struct {
	FamilyName string   `json:"familyName,omitempty" bson:"family_name,omitempty"`
	Members    []Member `json:"members" bson:"members"`
}

// ParseMembers converts a raw member document into a normalized graph.
//
// One Node is emitted per member, preserving input order. Each spouseIds
// entry produces a spouse edge once per unordered pair; each childrenIds
// entry produces a directed parent edge member→child. Referential integrity
// is not checked here: dangling IDs are tolerated downstream by the layout
// and render layers (fail-soft for user-entered genealogical data). Use
// [ValidateDocument] for strict checking.
func ParseMembers(doc Document) Data {
	nodes := make([]Node, 0, len(doc.Members))
	var edges []Edge
	seenPairs := make(map[string]bool)

	for _, m := range doc.Members {
		nodes = append(nodes, Node{
			ID:        m.ID,
			Name:      m.Name,
			Gender:    m.Gender,
			BirthYear: m.BirthYear,
			DeathYear: m.DeathYear,
			Status:    m.Status,
		})

		for _, spouseID := range m.SpouseIDs {
			key := pairKey(m.ID, spouseID)
			if seenPairs[key] {
				continue
			}
			seenPairs[key] = true
			edges = append(edges, Edge{From: m.ID, To: spouseID, Type: EdgeSpouse})
		}

		for _, childID := range m.ChildrenIDs {
			edges = append(edges, Edge{From: m.ID, To: childID, Type: EdgeParent})
		}
	}

	name := doc.FamilyName
	if name == "" {
		name = "Family"
	}

	return Data{
		Meta: Meta{
			FamilyName: name,
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		},
		Nodes: nodes,
		Edges: edges,
	}
}

// NewMemberID generates a unique ID for a newly added member.
// The "m-" prefix keeps generated IDs visually distinct from imported ones.
func NewMemberID() string {
	return "m-" + uuid.NewString()
}
