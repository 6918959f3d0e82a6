package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/ui/popup"
)

// PopupHarness drives a popup.Popup with synthetic key presses and records
// the commands it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness initializes p and captures its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the underlying popup.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

// View returns the popup's rendered content.
func (h *PopupHarness) View() string {
	return h.popup.View()
}

// SendMsg sends msg to the popup and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey types the runes of key.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendType types text one rune at a time.
func (h *PopupHarness) SendType(text string) {
	for _, r := range text {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendSpecialKey sends a non-rune key.
func (h *PopupHarness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.SendSpecialKey(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendSpecialKey(tea.KeyEscape) }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.SendSpecialKey(tea.KeyUp) }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.SendSpecialKey(tea.KeyDown) }

// Commands returns all commands collected since creation or ClearCommands.
func (h *PopupHarness) Commands() []tea.Cmd {
	return h.cmds
}

// LastCommand returns the most recent command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands forgets the collected commands.
func (h *PopupHarness) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs cmd and returns its message, nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// AssertViewContains returns a failure message if the view lacks substr.
func (h *PopupHarness) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

// AssertViewNotContains returns a failure message if the view has substr.
func (h *PopupHarness) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}
