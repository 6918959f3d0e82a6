package confirm

import (
	"github.com/llehouerou/bpplay/internal/ui/action"
)

// Dismissed is the Choice reported when the popup is closed with esc.
const Dismissed = -1

// Result is sent when the user picks an option or dismisses the popup.
type Result struct {
	Choice  int // index into Request.Options, or Dismissed
	Context any
}

// Confirmed reports whether the first option was chosen.
func (r Result) Confirmed() bool {
	return r.Choice == 0
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "confirm.result" }

// ActionMsg creates an action.Msg for a confirm action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "confirm", Action: a}
}
