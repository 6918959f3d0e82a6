// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/ui"
	"github.com/llehouerou/bpplay/internal/ui/popup"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryOrder defines the display order of binding contexts.
var categoryOrder = []string{"global", "playback", "breakpoints", "list"}

var categoryLabels = map[string]string{
	"global":      "Global",
	"playback":    "Playback",
	"breakpoints": "Breakpoints",
	"list":        "Breakpoint List",
}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

// New builds the help content from keymap.Bindings.
func New() Model {
	return Model{lines: buildLines()}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	maxWidth := 0
	for _, line := range m.lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(m.lines))
	end := min(start+m.visibleHeight(), len(m.lines))
	visible := make([]string, 0, end-start)
	for _, line := range m.lines[start:end] {
		// Pad so the popup keeps its width while scrolling.
		visible = append(visible, line+strings.Repeat(" ", maxWidth-lipgloss.Width(line)))
	}

	s := styles.T().S()
	footer := "?/esc close"
	if len(m.lines) > m.visibleHeight() {
		footer = "j/k scroll · " + footer
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render(footer))
	return b.String()
}

func buildLines() []string {
	t := styles.T()
	s := t.S()
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, len(keyLabel(b)))
	}

	var lines []string
	for _, ctx := range categoryOrder {
		bindings := keymap.ByContext(ctx)
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			headerStyle.Render(categoryLabels[ctx]),
			s.Subtle.Render(strings.Repeat("─", keyWidth+20)),
		)
		for _, b := range bindings {
			label := keyLabel(b)
			lines = append(lines, s.Key.Render(label+strings.Repeat(" ", keyWidth-len(label)))+
				"  "+s.Base.Render(b.Description))
		}
	}
	return lines
}

func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		keys[i] = keymap.DisplayKey(k)
	}
	return strings.Join(keys, ", ")
}

// visibleHeight leaves room for the title, footer and popup chrome.
func (m Model) visibleHeight() int {
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
