// Package ui provides shared UI constants and the Base component helper.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	PanelOverhead = BorderHeight + HeaderHeight

	// MinListHeight is the smallest breakpoint list worth drawing.
	MinListHeight = 3
)
