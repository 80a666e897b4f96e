package view

// Options are the user-facing view-mode toggles.
type Options struct {
	// ShowAllGenerations disables generation collapse. When false and a
	// node is selected, only the selected node's immediate relatives
	// remain visible.
	ShowAllGenerations bool

	// FocusLineage fades every node outside the selected node's direct
	// lineage (ancestors and descendants).
	FocusLineage bool

	// ShowGenerationLabels enables the sticky generation-number overlay.
	ShowGenerationLabels bool
}

// DefaultOptions returns the initial view-mode state: everything visible,
// no lineage focus, labels on.
func DefaultOptions() Options {
	return Options{
		ShowAllGenerations:   true,
		FocusLineage:         false,
		ShowGenerationLabels: true,
	}
}
