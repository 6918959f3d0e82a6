package textinput

import (
	"github.com/llehouerou/bpplay/internal/ui/action"
)

// Result is sent when the prompt is confirmed or canceled.
type Result struct {
	Text     string
	Context  any
	Canceled bool // esc was pressed
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "textinput.result" }

// ActionMsg creates an action.Msg for a textinput action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "textinput", Action: a}
}
