package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/ui/playerbar"
	"github.com/llehouerou/bpplay/internal/ui/render"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// headerHeight is the number of lines above the main panel.
const headerHeight = 1

const appName = "bpplay"

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var main string
	if m.session.Loaded() {
		main = m.list.View()
	} else {
		main = m.renderRecent(m.width, m.listHeight())
	}

	parts := []string{m.renderHeader(), main}
	if n := m.renderNotifications(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, m.renderPlayerBar())

	view := lipgloss.JoinVertical(lipgloss.Left, parts...)
	view = m.popups.RenderOverlay(view)
	return enforceHeight(view, m.height)
}

// renderHeader shows the app name, the open file and its size.
func (m Model) renderHeader() string {
	t := styles.T()
	s := t.S()

	left := styles.ApplyBoldGradient(appName, t.Primary, t.Secondary)
	if m.session.Loaded() {
		title := render.Sanitize(m.session.Title())
		if m.session.Dirty() {
			title += " " + s.Marker.Render("●")
		}
		left += "  " + s.Base.Render(title)
	}

	right := s.Key.Render(m.keys.Label(keymap.ActionHelp)) + s.Muted.Render(" help")
	if m.session.Loaded() {
		right = s.Muted.Render(humanBytes(m.session.AudioSize())+"  ") + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderNotifications() string {
	if len(m.notifications) == 0 {
		return ""
	}
	s := styles.T().S()
	lines := make([]string, len(m.notifications))
	for i, n := range m.notifications {
		text := render.TruncateAndPad(" "+render.Sanitize(n.Message), m.width)
		if n.Level == LevelError {
			lines[i] = s.Error.Render(text)
		} else {
			lines[i] = s.Success.Render(text)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPlayerBar() string {
	st := playerbar.NewState(m.ctrl, m.session.Title(), m.session.Breakpoints())
	if m.session.Loaded() {
		st.Prev, st.Next = m.session.Neighbors()
	}
	return playerbar.Render(st, m.width)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	if len(lines) == targetHeight {
		return view
	}
	if len(lines) < targetHeight {
		for i := len(lines); i < targetHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
