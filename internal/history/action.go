// Package history records breakpoint edits for linear undo/redo.
package history

import (
	"slices"

	"github.com/llehouerou/bpplay/internal/breakpoint"
)

// Kind identifies an edit.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindClearAll
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "Add"
	case KindRemove:
		return "Remove"
	case KindClearAll:
		return "ClearAll"
	default:
		return "Unknown"
	}
}

// Action is a reversible edit of a breakpoint collection.
//
// Breakpoint is set for Add and Remove. Snapshot holds the collection
// contents prior to a ClearAll.
type Action struct {
	Kind       Kind
	Breakpoint breakpoint.Breakpoint
	Snapshot   []breakpoint.Breakpoint
}

// Add returns an action inserting bp.
func Add(bp breakpoint.Breakpoint) Action {
	return Action{Kind: KindAdd, Breakpoint: bp}
}

// Remove returns an action deleting bp.
func Remove(bp breakpoint.Breakpoint) Action {
	return Action{Kind: KindRemove, Breakpoint: bp}
}

// ClearAll returns an action emptying a collection whose contents were snapshot.
func ClearAll(snapshot []breakpoint.Breakpoint) Action {
	return Action{Kind: KindClearAll, Snapshot: slices.Clone(snapshot)}
}

// apply performs the action forward. Returns false if nothing changed.
func (a Action) apply(c *breakpoint.Collection) bool {
	switch a.Kind {
	case KindAdd:
		c.Insert(a.Breakpoint)
		return true
	case KindRemove:
		return c.Remove(a.Breakpoint)
	case KindClearAll:
		return len(c.Clear()) > 0
	}
	return false
}

// revert undoes the action.
func (a Action) revert(c *breakpoint.Collection) {
	switch a.Kind {
	case KindAdd:
		c.Remove(a.Breakpoint)
	case KindRemove:
		c.Insert(a.Breakpoint)
	case KindClearAll:
		c.Restore(a.Snapshot)
	}
}
