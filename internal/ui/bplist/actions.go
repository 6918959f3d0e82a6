package bplist

import (
	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/ui/action"
)

// Seek asks the app to move playback to a breakpoint.
type Seek struct {
	Breakpoint breakpoint.Breakpoint
}

// ActionType implements action.Action.
func (a Seek) ActionType() string { return "bplist.seek" }

// Remove asks the app to remove a breakpoint.
type Remove struct {
	Breakpoint breakpoint.Breakpoint
}

// ActionType implements action.Action.
func (a Remove) ActionType() string { return "bplist.remove" }

// ActionMsg creates an action.Msg for a bplist action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "bplist", Action: a}
}
