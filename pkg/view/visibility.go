package view

import (
	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

// Resolve derives per-node display state from the current selection and
// view-mode options, overwriting the Visible/Opacity/DirectLineage/
// Immediate fields of every placed node. Placement fields are untouched.
//
// The resolver is a full re-derivation: it is idempotent and must be
// re-run (not patched incrementally) after every selection or view-mode
// change. Visibility (rule 2) and opacity (rule 3) are independent and
// compose; an invisible node may also be faded, which simply has no
// visual effect.
func Resolve(l *layout.Result, rel *tree.Relations, selectedID string, opts Options) {
	// Rule 1: reset.
	l.Walk(func(n *layout.PositionedNode) {
		n.Visible = true
		n.Opacity = layout.FullOpacity
		n.DirectLineage = false
		n.Immediate = false
	})

	if selectedID == "" {
		return
	}

	// Rule 2: generation collapse, only immediate relatives stay visible.
	if !opts.ShowAllGenerations {
		immediate := rel.Immediate(selectedID)
		l.Walk(func(n *layout.PositionedNode) {
			n.Visible = immediate[n.ID]
			n.Immediate = immediate[n.ID]
		})
	}

	// Rule 3: lineage focus fades everything off the ancestor/descendant
	// axis. Spouses are deliberately excluded from the lineage set.
	if opts.FocusLineage {
		lineage := rel.Ancestors(selectedID)
		for id := range rel.Descendants(selectedID) {
			lineage[id] = true
		}
		lineage[selectedID] = true

		l.Walk(func(n *layout.PositionedNode) {
			if lineage[n.ID] {
				n.Opacity = layout.FullOpacity
				n.DirectLineage = true
			} else {
				n.Opacity = layout.FadedOpacity
			}
		})
	}
}
