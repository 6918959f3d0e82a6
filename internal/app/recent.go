package app

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/state"
	"github.com/llehouerou/bpplay/internal/ui/render"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

// recentList is the start screen shown while no file is open.
type recentList struct {
	files  []state.RecentFile
	cursor int
}

func (m *Model) refreshRecent() {
	files, err := m.state.RecentFiles(m.cfg.GetRecentLimit())
	if err != nil {
		slog.Warn("list recent files", "err", err)
		return
	}
	m.recent.files = files
	m.recent.cursor = min(m.recent.cursor, max(len(files)-1, 0))
}

// recordRecent remembers the open file and where playback stands.
func (m *Model) recordRecent() {
	path := m.session.Path()
	if path == "" {
		return
	}
	f := state.RecentFile{
		Path:        path,
		Title:       m.session.Title(),
		Breakpoints: len(m.session.Breakpoints()),
		Position:    m.ctrl.Position(),
		OpenedAt:    time.Now(),
	}
	if err := m.state.RecordRecent(f, m.cfg.GetRecentLimit()); err != nil {
		slog.Warn("record recent file", "path", path, "err", err)
	}
}

// handleRecentAction applies list actions to the start screen.
func (m *Model) handleRecentAction(a keymap.Action) bool {
	n := len(m.recent.files)
	switch a { //nolint:exhaustive // only list actions
	case keymap.ActionMoveUp:
		m.recent.cursor = max(m.recent.cursor-1, 0)
	case keymap.ActionMoveDown:
		m.recent.cursor = max(min(m.recent.cursor+1, n-1), 0)
	case keymap.ActionJumpStart:
		m.recent.cursor = 0
	case keymap.ActionJumpEnd:
		m.recent.cursor = max(n-1, 0)
	default:
		return false
	}
	return true
}

func (m Model) selectedRecent() *state.RecentFile {
	if len(m.recent.files) == 0 {
		return nil
	}
	f := m.recent.files[m.recent.cursor]
	return &f
}

func (m *Model) forgetRecent(path string) {
	if err := m.state.RemoveRecent(path); err != nil {
		slog.Warn("remove recent file", "path", path, "err", err)
	}
	m.refreshRecent()
}

// renderRecent draws the start screen in a width x height panel.
func (m Model) renderRecent(width, height int) string {
	s := styles.T().S()
	innerWidth := width - 2

	lines := []string{
		s.Title.Render(render.TruncateAndPad("Recent files", innerWidth)),
		s.Subtle.Render(render.Separator(innerWidth)),
	}
	if len(m.recent.files) == 0 {
		hint := "No recent files. Press " + m.keys.Label(keymap.ActionOpen) + " to open one."
		lines = append(lines, s.Muted.Render(render.TruncateAndPad("  "+hint, innerWidth)))
	}

	now := time.Now()
	for i, f := range m.recent.files {
		if len(lines) >= height-2 {
			break
		}
		lines = append(lines, renderRecentLine(f, i == m.recent.cursor, now, innerWidth))
	}
	for len(lines) < height-2 {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	return styles.PanelStyle(true).Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func renderRecentLine(f state.RecentFile, selected bool, now time.Time, width int) string {
	s := styles.T().S()

	title := f.Title
	if title == "" {
		title = filepath.Base(f.Path)
	}
	meta := humanize.RelTime(f.OpenedAt, now, "ago", "from now")
	if f.Breakpoints > 0 {
		meta = english.Plural(f.Breakpoints, "breakpoint", "") + " · " + meta
	}
	if f.Position > 0 {
		meta = "at " + breakpoint.FormatTimepoint(f.Position) + " · " + meta
	}

	metaWidth := len([]rune(meta))
	left := render.TruncateAndPad("  "+title, max(width-metaWidth-1, 1))
	line := render.Row(left, meta, width)
	if selected {
		return s.Cursor.Render(line)
	}
	return s.Base.Render(line)
}

func withSlash(dir string) string {
	if dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

func dirWithSlash(path string) string {
	return withSlash(filepath.Dir(path))
}
