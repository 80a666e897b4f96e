package tree

import (
	"slices"
	"strconv"
	"strings"
)

// Gender values accepted by the parser and validator.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Status values for a member's life status.
const (
	StatusLiving   = "living"
	StatusDeceased = "deceased"
)

// Edge types.
const (
	EdgeSpouse = "spouse"
	EdgeParent = "parent"
)

// Meta describes the family document itself.
type Meta struct {
	FamilyName string `json:"familyName" bson:"family_name"`
	ExportedAt string `json:"exportedAt" bson:"exported_at"`
	Version    int    `json:"version" bson:"version"`
}

// Node is a single person in the family graph.
// Nodes are immutable after parsing; one instance per person per session.
type Node struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Gender    string `json:"gender" bson:"gender"`
	BirthYear int    `json:"birthYear,omitempty" bson:"birth_year,omitempty"`
	DeathYear int    `json:"deathYear,omitempty" bson:"death_year,omitempty"`
	Status    string `json:"status,omitempty" bson:"status,omitempty"`
}

// Lifespan returns a display string for the node's birth and death years:
// "1921 – 1984", "b. 1921", "d. 1984", or "" when neither year is known.
func (n *Node) Lifespan() string {
	switch {
	case n.BirthYear != 0 && n.DeathYear != 0:
		return strconv.Itoa(n.BirthYear) + " – " + strconv.Itoa(n.DeathYear)
	case n.BirthYear != 0:
		return "b. " + strconv.Itoa(n.BirthYear)
	case n.DeathYear != 0:
		return "d. " + strconv.Itoa(n.DeathYear)
	default:
		return ""
	}
}

// Edge is a relation between two nodes. Parent edges are directed
// parent→child; spouse edges are stored once per unordered pair.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Type string `json:"type" bson:"type"`
}

// Data is the canonical family graph: metadata plus nodes and edges.
// It is immutable once loaded and replaced wholesale on reload.
type Data struct {
	Meta  Meta   `json:"meta" bson:"meta"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node returns the node with the given ID, or nil if absent.
func (d *Data) Node(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// NodeIDs returns the IDs of all nodes in input order.
func (d *Data) NodeIDs() []string {
	ids := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// pairKey builds the deduplication key for an unordered spouse pair.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Search returns the IDs of nodes whose name or ID contains the query,
// case-insensitively. Prefix matches on the name sort before substring
// matches; ties keep input order. An empty query matches nothing.
func (d *Data) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type hit struct {
		id     string
		prefix bool
		order  int
	}
	var hits []hit
	for i, n := range d.Nodes {
		name := strings.ToLower(n.Name)
		id := strings.ToLower(n.ID)
		if !strings.Contains(name, q) && !strings.Contains(id, q) {
			continue
		}
		hits = append(hits, hit{id: n.ID, prefix: strings.HasPrefix(name, q), order: i})
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		if a.prefix != b.prefix {
			if a.prefix {
				return -1
			}
			return 1
		}
		return a.order - b.order
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out
}
