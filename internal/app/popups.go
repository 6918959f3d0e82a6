package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/ui/confirm"
	"github.com/llehouerou/bpplay/internal/ui/helpbindings"
	"github.com/llehouerou/bpplay/internal/ui/popup"
	"github.com/llehouerou/bpplay/internal/ui/textinput"
)

// PopupType identifies which popup is currently active.
type PopupType int

const (
	PopupNone PopupType = iota
	PopupHelp
	PopupConfirm
	PopupTextInput
)

// PopupManager owns the modal popups. At most one is shown at a time.
type PopupManager struct {
	help      helpbindings.Model
	showHelp  bool
	confirm   confirm.Model
	textInput textinput.Model
	showInput bool

	width  int
	height int
}

// NewPopupManager creates a PopupManager with idle popups.
func NewPopupManager() PopupManager {
	return PopupManager{
		help:      helpbindings.New(),
		confirm:   confirm.New(),
		textInput: textinput.New(),
	}
}

// SetSize updates the dimensions for popup rendering.
func (p *PopupManager) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.help.SetSize(width, height)
	p.confirm.SetSize(width, height)
	p.textInput.SetSize(p.inputWidth(), height)
}

// inputWidth matches the content width of a SizeInput popup.
func (p *PopupManager) inputWidth() int {
	w := p.width * popup.SizeInput.WidthPct / 100
	return max(min(w, popup.SizeInput.MaxWidth)-6, 0)
}

// Active returns the popup receiving keys.
func (p *PopupManager) Active() PopupType {
	switch {
	case p.confirm.Active():
		return PopupConfirm
	case p.showInput:
		return PopupTextInput
	case p.showHelp:
		return PopupHelp
	default:
		return PopupNone
	}
}

// ShowHelp opens the key binding help.
func (p *PopupManager) ShowHelp() {
	p.help = helpbindings.New()
	p.help.SetSize(p.width, p.height)
	p.showHelp = true
}

// HideHelp closes the help popup.
func (p *PopupManager) HideHelp() {
	p.showHelp = false
}

// ShowConfirm asks req.
func (p *PopupManager) ShowConfirm(req confirm.Request) {
	p.confirm.Show(req, p.width, p.height)
}

// ShowTextInput opens a prompt and returns its init command.
func (p *PopupManager) ShowTextInput(opts textinput.Options) tea.Cmd {
	p.textInput.Start(opts, p.inputWidth(), p.height)
	p.showInput = true
	return p.textInput.Init()
}

// HideTextInput closes the prompt.
func (p *PopupManager) HideTextInput() {
	p.showInput = false
}

// HandleKey routes a key to the active popup. Returns true if a popup
// consumed it.
func (p *PopupManager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	switch p.Active() {
	case PopupConfirm:
		_, cmd = p.confirm.Update(msg)
	case PopupTextInput:
		_, cmd = p.textInput.Update(msg)
	case PopupHelp:
		_, cmd = p.help.Update(msg)
	case PopupNone:
		return false, nil
	}
	return true, cmd
}

// Update forwards non-key messages (cursor blink) to the prompt.
func (p *PopupManager) Update(msg tea.Msg) tea.Cmd {
	if !p.showInput {
		return nil
	}
	_, cmd := p.textInput.Update(msg)
	return cmd
}

// RenderOverlay draws the active popup over base.
func (p *PopupManager) RenderOverlay(base string) string {
	var content string
	size := popup.SizeAuto
	switch p.Active() {
	case PopupConfirm:
		content = p.confirm.View()
	case PopupTextInput:
		content = p.textInput.View()
		size = popup.SizeInput
	case PopupHelp:
		content = p.help.View()
		size = popup.SizeHelp
	case PopupNone:
		return base
	}
	if content == "" {
		return base
	}
	box := popup.RenderBordered(content, p.width, p.height, size)
	return popup.Compose(base, box, p.width, p.height)
}
