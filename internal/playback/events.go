package playback

import "time"

// StateChange is emitted when the controller state changes.
// Finished is set when playback stopped because the source ended.
type StateChange struct {
	Previous State
	Current  State
	Finished bool
}

// PositionChange is emitted when a seek or reset moves the position.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an operation fails.
type ErrorEvent struct {
	Operation string // e.g., "load", "play"
	Err       error
}
