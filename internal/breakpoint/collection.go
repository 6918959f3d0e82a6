package breakpoint

import (
	"slices"
	"sort"
	"time"
)

// Collection is an ordered multiset of breakpoints.
// Iteration always yields non-decreasing timepoints.
type Collection struct {
	items []Breakpoint
}

// NewCollection creates a collection holding the given breakpoints.
func NewCollection(bps ...Breakpoint) *Collection {
	c := &Collection{}
	c.Restore(bps)
	return c
}

// Insert adds bp after any equal elements already present.
func (c *Collection) Insert(bp Breakpoint) {
	i := sort.Search(len(c.items), func(i int) bool {
		return Compare(c.items[i], bp) > 0
	})
	c.items = slices.Insert(c.items, i, bp)
}

// Remove deletes one exact match of bp. Returns false if bp is absent.
func (c *Collection) Remove(bp Breakpoint) bool {
	i, found := slices.BinarySearchFunc(c.items, bp, Compare)
	if !found {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Contains reports whether an exact match of bp is present.
func (c *Collection) Contains(bp Breakpoint) bool {
	_, found := slices.BinarySearchFunc(c.items, bp, Compare)
	return found
}

// Clear empties the collection and returns its prior contents.
func (c *Collection) Clear() []Breakpoint {
	prior := c.items
	c.items = nil
	return prior
}

// Restore replaces the contents with a copy of snapshot.
func (c *Collection) Restore(snapshot []Breakpoint) {
	c.items = slices.Clone(snapshot)
	slices.SortStableFunc(c.items, Compare)
}

// Neighbors returns the greatest breakpoint strictly before pos and the
// least breakpoint at or after pos. Either may be nil.
func (c *Collection) Neighbors(pos time.Duration) (prev, next *Breakpoint) {
	i := sort.Search(len(c.items), func(i int) bool {
		return c.items[i].Timepoint >= pos
	})
	if i > 0 {
		bp := c.items[i-1]
		prev = &bp
	}
	if i < len(c.items) {
		bp := c.items[i]
		next = &bp
	}
	return prev, next
}

// NearestTo returns whichever neighbor of pos is closer in time.
// When both are equally distant the previous one wins.
func (c *Collection) NearestTo(pos time.Duration) *Breakpoint {
	prev, next := c.Neighbors(pos)
	switch {
	case prev == nil:
		return next
	case next == nil:
		return prev
	}
	if next.Timepoint-pos < pos-prev.Timepoint {
		return next
	}
	return prev
}

// All returns a copy of the breakpoints in order.
func (c *Collection) All() []Breakpoint {
	return slices.Clone(c.items)
}

// At returns the breakpoint at index i.
func (c *Collection) At(i int) Breakpoint {
	return c.items[i]
}

// Index returns the position of the first exact match of bp, or -1.
func (c *Collection) Index(bp Breakpoint) int {
	i, found := slices.BinarySearchFunc(c.items, bp, Compare)
	if !found {
		return -1
	}
	return i
}

// Len returns the number of breakpoints.
func (c *Collection) Len() int {
	return len(c.items)
}

// IsEmpty returns true if the collection holds no breakpoints.
func (c *Collection) IsEmpty() bool {
	return len(c.items) == 0
}
