// Package breakpoint defines named timestamp markers and the ordered
// collection that holds them.
package breakpoint

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// DefaultHintLimit is the maximum hint length accepted from user input.
const DefaultHintLimit = 64

// Breakpoint is a timestamp in an audio file with an optional hint.
// Values are compared structurally.
type Breakpoint struct {
	Timepoint time.Duration
	Hint      string
}

// New creates a breakpoint. Negative timepoints are clamped to zero.
func New(timepoint time.Duration, hint string) Breakpoint {
	return Breakpoint{Timepoint: max(timepoint, 0), Hint: hint}
}

// Compare orders breakpoints by timepoint, then by hint.
func Compare(a, b Breakpoint) int {
	if c := cmp.Compare(a.Timepoint, b.Timepoint); c != 0 {
		return c
	}
	return strings.Compare(a.Hint, b.Hint)
}

// String renders the breakpoint as "m:ss hint".
func (b Breakpoint) String() string {
	if b.Hint == "" {
		return FormatTimepoint(b.Timepoint)
	}
	return FormatTimepoint(b.Timepoint) + " " + b.Hint
}

// FormatTimepoint formats d as m:ss, or h:mm:ss past one hour.
func FormatTimepoint(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TrimHint trims surrounding whitespace and caps the hint to limit runes.
// A non-positive limit uses DefaultHintLimit.
func TrimHint(hint string, limit int) string {
	if limit <= 0 {
		limit = DefaultHintLimit
	}
	hint = strings.TrimSpace(hint)
	runes := []rune(hint)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return hint
}
