package tree

// Relations holds the derived relationship indexes for O(1) lookup.
// Spouse entries are bidirectional; Children maps parent→children and
// Parents maps child→parents. Rebuilt whenever the underlying Data
// changes, never mutated in place.
type Relations struct {
	Spouses  map[string][]string
	Children map[string][]string
	Parents  map[string][]string
}

// BuildRelations derives the relationship indexes from the edge list.
// Construction is O(E).
func BuildRelations(d *Data) *Relations {
	r := &Relations{
		Spouses:  make(map[string][]string),
		Children: make(map[string][]string),
		Parents:  make(map[string][]string),
	}

	for _, e := range d.Edges {
		switch e.Type {
		case EdgeSpouse:
			r.Spouses[e.From] = append(r.Spouses[e.From], e.To)
			r.Spouses[e.To] = append(r.Spouses[e.To], e.From)
		case EdgeParent:
			r.Children[e.From] = append(r.Children[e.From], e.To)
			r.Parents[e.To] = append(r.Parents[e.To], e.From)
		}
	}

	return r
}

// Ancestors returns the set of all nodes reachable by walking parent
// edges upward from id. The walk is breadth-first and cycle-safe; id
// itself is not included.
func (r *Relations) Ancestors(id string) map[string]bool {
	return r.walk(id, r.Parents)
}

// Descendants returns the set of all nodes reachable by walking child
// edges downward from id. Breadth-first, cycle-safe, id excluded.
func (r *Relations) Descendants(id string) map[string]bool {
	return r.walk(id, r.Children)
}

// Immediate returns id together with its parents, children, and spouses.
func (r *Relations) Immediate(id string) map[string]bool {
	set := map[string]bool{id: true}
	for _, p := range r.Parents[id] {
		set[p] = true
	}
	for _, c := range r.Children[id] {
		set[c] = true
	}
	for _, s := range r.Spouses[id] {
		set[s] = true
	}
	return set
}

// walk collects every node reachable from id through next.
// The visited set doubles as the result and guards against cycles.
func (r *Relations) walk(id string, next map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range next[current] {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}

	return visited
}
