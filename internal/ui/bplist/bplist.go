// Package bplist renders the breakpoint list and handles its navigation.
package bplist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/ui"
	"github.com/llehouerou/bpplay/internal/ui/action"
	"github.com/llehouerou/bpplay/internal/ui/render"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// Model is the breakpoint list panel.
type Model struct {
	ui.Base
	cursor   cursor
	items    []breakpoint.Breakpoint
	position time.Duration
}

// New creates an empty list.
func New() Model {
	return Model{cursor: cursor{margin: ui.ScrollMargin}}
}

// SetBreakpoints replaces the displayed breakpoints, keeping the cursor
// in range.
func (m *Model) SetBreakpoints(bps []breakpoint.Breakpoint) {
	m.items = bps
	m.cursor.jump(m.cursor.pos, len(m.items), m.listHeight())
}

// SetPosition updates the playback position used to mark passed rows.
func (m *Model) SetPosition(pos time.Duration) {
	m.position = pos
}

// SetSize resizes the panel and keeps the cursor visible.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.ensureVisible(len(m.items), m.listHeight())
}

// Len returns the number of breakpoints shown.
func (m Model) Len() int {
	return len(m.items)
}

// Cursor returns the selected row.
func (m Model) Cursor() int {
	return m.cursor.pos
}

// Selected returns the breakpoint under the cursor, nil when empty.
func (m Model) Selected() *breakpoint.Breakpoint {
	if len(m.items) == 0 {
		return nil
	}
	bp := m.items[m.cursor.pos]
	return &bp
}

// SelectTimepoint moves the cursor to the first breakpoint at d.
func (m *Model) SelectTimepoint(d time.Duration) {
	for i, bp := range m.items {
		if bp.Timepoint == d {
			m.cursor.jump(i, len(m.items), m.listHeight())
			return
		}
	}
}

// HandleAction applies a list action. It returns whether the action was
// handled and a command carrying a Seek or Remove request.
func (m *Model) HandleAction(a keymap.Action) (bool, tea.Cmd) {
	n, h := len(m.items), m.listHeight()
	switch a { //nolint:exhaustive // only list actions
	case keymap.ActionMoveUp:
		m.cursor.move(-1, n, h)
	case keymap.ActionMoveDown:
		m.cursor.move(1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.jump(0, n, h)
	case keymap.ActionJumpEnd:
		m.cursor.jump(n-1, n, h)
	case keymap.ActionSelect:
		if bp := m.Selected(); bp != nil {
			return true, emit(Seek{Breakpoint: *bp})
		}
	case keymap.ActionDelete:
		if bp := m.Selected(); bp != nil {
			return true, emit(Remove{Breakpoint: *bp})
		}
	default:
		return false, nil
	}
	return true, nil
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}

func (m Model) listHeight() int {
	return max(m.ListHeight(ui.PanelOverhead), 0)
}

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	innerWidth := m.Width() - ui.BorderHeight
	height := m.listHeight()
	s := styles.T().S()

	header := render.TruncateAndPad(fmt.Sprintf("Breakpoints (%d)", len(m.items)), innerWidth)
	lines := []string{s.Title.Render(header), s.Subtle.Render(render.Separator(innerWidth))}

	if len(m.items) == 0 {
		lines = append(lines, s.Muted.Render(render.TruncateAndPad("  none yet, press b to add one", innerWidth)))
	}

	start, end := m.cursor.visibleRange(len(m.items), height)
	current := m.currentIndex()
	for i := start; i < end; i++ {
		lines = append(lines, m.renderLine(i, current, innerWidth))
	}
	for len(lines) < height+ui.HeaderHeight {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// currentIndex is the last breakpoint at or before the position, -1 if none.
func (m Model) currentIndex() int {
	idx := -1
	for i, bp := range m.items {
		if bp.Timepoint > m.position {
			break
		}
		idx = i
	}
	return idx
}

func (m Model) renderLine(idx, current, width int) string {
	bp := m.items[idx]

	prefix := "  "
	if idx == current {
		prefix = "▶ "
	}
	num := fmt.Sprintf("%3d  ", idx+1)
	tp := fmt.Sprintf("%-9s", breakpoint.FormatTimepoint(bp.Timepoint))
	hint := render.Sanitize(bp.Hint)

	line := render.TruncateAndPad(prefix+num+tp+hint, width)
	return m.lineStyle(idx, current).Render(line)
}

func (m Model) lineStyle(idx, current int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.pos && m.IsFocused()

	switch {
	case isCursor && idx == current:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case idx == current:
		return s.Playing
	case idx < current:
		return s.Muted
	default:
		return s.Base
	}
}
