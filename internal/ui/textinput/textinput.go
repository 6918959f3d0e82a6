// Package textinput provides a single-line input popup used for breakpoint
// hints and file paths.
package textinput

import (
	"fmt"
	"strings"

	bubbletext "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/ui"
	"github.com/llehouerou/bpplay/internal/ui/popup"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Options configures one prompt.
type Options struct {
	Title       string
	Placeholder string
	Initial     string
	CharLimit   int // 0 means unlimited
	Context     any // passed back in Result
}

// Model wraps a bubbles text input in a popup.
type Model struct {
	ui.Base
	title   string
	input   bubbletext.Model
	context any
}

// New creates an idle input.
func New() Model {
	return Model{input: bubbletext.New()}
}

// Start prepares the input for a new prompt and focuses it.
func (m *Model) Start(opts Options, width, height int) {
	ti := bubbletext.New()
	ti.Prompt = "> "
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = opts.CharLimit
	ti.SetValue(opts.Initial)
	ti.CursorEnd()
	ti.Focus()

	m.input = ti
	m.title = opts.Title
	m.context = opts.Context
	m.SetSize(width, height)
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-8, 10)
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return bubbletext.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}
		case tea.KeyEnter:
			text := m.input.Value()
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	b.WriteString(s.Playing.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	hint := "enter confirm · esc cancel"
	if limit := m.input.CharLimit; limit > 0 {
		hint = fmt.Sprintf("%d/%d · %s", len([]rune(m.input.Value())), limit, hint)
	}
	b.WriteString(s.Subtle.Render(hint))
	return b.String()
}
