// internal/playback/state.go
package playback

// State represents the controller state.
//
//	┌───────┐  load   ┌────────┐  play   ┌─────────┐
//	│ Empty │ ──────▶ │ Paused │ ──────▶ │ Playing │
//	└───────┘         └────────┘ ◀────── └─────────┘
//	    ▲                 │        pause      │
//	    └──── unload ─────┴───────────────────┘
//
// Reaching the end of the source moves Playing to Paused.
type State int

const (
	StateEmpty State = iota
	StatePaused
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if a source is loaded (playing or paused).
func (s State) IsLoaded() bool {
	return s == StatePlaying || s == StatePaused
}
