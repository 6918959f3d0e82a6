// Package confirm provides a modal choice popup (yes/no, save/discard/cancel).
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/ui"
	"github.com/llehouerou/bpplay/internal/ui/popup"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Option is one choice in the popup. Key selects it directly.
type Option struct {
	Label string
	Key   string
}

// Request describes what to ask.
type Request struct {
	Title   string
	Message string
	Options []Option
	Context any // passed back in Result
}

// YesNo builds a two-option request. Choice 0 is "Yes".
func YesNo(title, message string, context any) Request {
	return Request{
		Title:   title,
		Message: message,
		Options: []Option{{Label: "Yes", Key: "y"}, {Label: "No", Key: "n"}},
		Context: context,
	}
}

// Model is the popup state.
type Model struct {
	ui.Base
	req      Request
	selected int
	active   bool
}

// New creates an inactive popup.
func New() Model {
	return Model{}
}

// Show activates the popup with req.
func (m *Model) Show(req Request, width, height int) {
	m.req = req
	m.selected = 0
	m.active = true
	m.SetSize(width, height)
}

// Reset deactivates the popup.
func (m *Model) Reset() {
	*m = Model{Base: m.Base}
}

// Active reports whether the popup is shown.
func (m Model) Active() bool {
	return m.active
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case "up", "k", "shift+tab":
		m.selected = max(m.selected-1, 0)
		return m, nil
	case "down", "j", "tab":
		m.selected = min(m.selected+1, len(m.req.Options)-1)
		return m, nil
	case "enter":
		return m, m.choose(m.selected)
	case "esc":
		return m, m.choose(Dismissed)
	}

	for i, opt := range m.req.Options {
		if opt.Key != "" && strings.EqualFold(opt.Key, key) {
			return m, m.choose(i)
		}
	}
	return m, nil
}

func (m *Model) choose(choice int) tea.Cmd {
	m.active = false
	ctx := m.req.Context
	return func() tea.Msg {
		return ActionMsg(Result{Choice: choice, Context: ctx})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	b.WriteString(s.Playing.Render(m.req.Title))
	b.WriteString("\n\n")
	b.WriteString(s.Base.Render(m.req.Message))
	b.WriteString("\n\n")
	for i, opt := range m.req.Options {
		label := opt.Label
		if opt.Key != "" {
			label += " (" + opt.Key + ")"
		}
		if i == m.selected {
			b.WriteString(s.Playing.Render("> " + label))
		} else {
			b.WriteString(s.Base.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render("↑↓ navigate · enter select · esc cancel"))
	return b.String()
}
