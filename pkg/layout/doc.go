// Package layout computes world-space positions for a family graph.
//
// The algorithm is subtree-based and generational: each person and their
// spouses form a family unit, the unit is centered over the combined span
// of its children's subtrees, and children are placed recursively one
// generation below. Two mutually recursive passes drive it:
//
//   - measure: computes a subtree's width without placing anything
//   - place: assigns coordinates, re-measuring children to divide the span
//
// Subtree widths are recomputed rather than cached; family graphs are
// shallow and narrow enough that the quadratic worst case does not matter.
//
// Layout is a pure function of the input graph and the design profile:
// the same inputs always yield identical coordinates.
package layout
