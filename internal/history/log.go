package history

import (
	"errors"
	"fmt"

	"github.com/llehouerou/bpplay/internal/breakpoint"
)

// DefaultCapacity is the number of actions kept when none is configured.
const DefaultCapacity = 255

// ErrNoOp is wrapped by the errors returned when undo or redo has nothing to do.
var ErrNoOp = errors.New("no-op")

var (
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", ErrNoOp)
	ErrNothingToRedo = fmt.Errorf("nothing to redo: %w", ErrNoOp)
)

// Log is a bounded linear history of actions.
//
// current counts the actions applied, starting from the oldest retained one,
// so 0 <= current <= len(actions) always holds. revs[i] is the revision
// reached by applying actions[i]; base is the revision before actions[0].
type Log struct {
	actions  []Action
	revs     []uint64
	current  int
	capacity int
	base     uint64
	lastRev  uint64
}

// New creates a log holding at most capacity actions.
// A non-positive capacity uses DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		actions:  make([]Action, 0, min(capacity, 32)),
		revs:     make([]uint64, 0, min(capacity, 32)),
		capacity: capacity,
	}
}

// Record appends an already-applied action.
// Discards any redo actions and evicts the oldest past capacity.
func (l *Log) Record(a Action) {
	// Clear redo actions (everything after current)
	l.actions = l.actions[:l.current]
	l.revs = l.revs[:l.current]

	l.lastRev++
	l.actions = append(l.actions, a)
	l.revs = append(l.revs, l.lastRev)
	l.current = len(l.actions)

	if excess := len(l.actions) - l.capacity; excess > 0 {
		l.base = l.revs[excess-1]
		clear(l.actions[:excess])
		l.actions = l.actions[excess:]
		l.revs = l.revs[excess:]
		l.current -= excess
	}
}

// Apply performs a on c and records it.
// Edits that leave c unchanged are not recorded and Apply returns false.
func (l *Log) Apply(c *breakpoint.Collection, a Action) bool {
	if a.Kind == KindClearAll && a.Snapshot == nil {
		a.Snapshot = c.All()
	}
	if !a.apply(c) {
		return false
	}
	l.Record(a)
	return true
}

// Undo reverts the most recently applied action on c.
func (l *Log) Undo(c *breakpoint.Collection) error {
	if !l.CanUndo() {
		return ErrNothingToUndo
	}
	l.current--
	l.actions[l.current].revert(c)
	return nil
}

// Redo re-applies the next undone action on c.
func (l *Log) Redo(c *breakpoint.Collection) error {
	if !l.CanRedo() {
		return ErrNothingToRedo
	}
	l.actions[l.current].apply(c)
	l.current++
	return nil
}

// CanUndo returns true if there is an applied action to revert.
func (l *Log) CanUndo() bool {
	return l.current > 0
}

// CanRedo returns true if there is an undone action to re-apply.
func (l *Log) CanRedo() bool {
	return l.current < len(l.actions)
}

// Revision identifies the state reached by the applied actions. Undoing
// back to an earlier state returns its revision again; a new edit always
// yields a revision not seen before.
func (l *Log) Revision() uint64 {
	if l.current == 0 {
		return l.base
	}
	return l.revs[l.current-1]
}

// Len returns the number of retained actions.
func (l *Log) Len() int { return len(l.actions) }

// Current returns the number of applied actions.
func (l *Log) Current() int { return l.current }

// Capacity returns the maximum number of retained actions.
func (l *Log) Capacity() int { return l.capacity }

// Reset drops all history. The revision after a reset is new.
func (l *Log) Reset() {
	clear(l.actions)
	l.actions = l.actions[:0]
	l.revs = l.revs[:0]
	l.current = 0
	l.lastRev++
	l.base = l.lastRev
}
