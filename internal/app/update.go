package app

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/bpplay/internal/errmsg"
	"github.com/llehouerou/bpplay/internal/mpris"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/ui"
	"github.com/llehouerou/bpplay/internal/ui/action"
	"github.com/llehouerou/bpplay/internal/ui/bplist"
	"github.com/llehouerou/bpplay/internal/ui/confirm"
	"github.com/llehouerou/bpplay/internal/ui/helpbindings"
	"github.com/llehouerou/bpplay/internal/ui/playerbar"
	"github.com/llehouerou/bpplay/internal/ui/textinput"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.popups.SetSize(msg.Width, msg.Height)
		m.list.SetSize(msg.Width, m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case action.Msg:
		return m.handleAction(msg)

	case TickMsg:
		return m.handleTick()

	case StderrMsg:
		cmd := m.notify(msg.Line, LevelError)
		return m, tea.Batch(cmd, watchStderr(m.stderr))

	case NotificationClearMsg:
		m.clearNotification(msg.ID)
		return m, nil

	case OpenFileMsg:
		cmd := m.openFile(msg.Path)
		return m, cmd

	case mpris.Command:
		return m.handleRemote(msg)

	case DrainedMsg:
		m.ctrl.Finish(msg.Err)
		m.syncView()
		return m, watchDrained(m.ctrl)

	case PlaybackStateMsg:
		return m.handlePlaybackState(playback.StateChange(msg))

	case PlaybackPositionMsg:
		m.list.SetPosition(msg.Position)
		return m, watchPlayback(m.events)

	case PlaybackErrorMsg:
		return m.handlePlaybackError(playback.ErrorEvent(msg))
	}

	cmd := m.popups.Update(msg)
	return m, cmd
}

// listHeight is the height left for the main panel.
func (m Model) listHeight() int {
	h := m.height - headerHeight - playerbar.Height - len(m.notifications)
	return max(h, ui.MinListHeight)
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case confirm.Result:
		return m.handleConfirm(a)
	case textinput.Result:
		m.popups.HideTextInput()
		return m.handleInput(a)
	case helpbindings.Close:
		m.popups.HideHelp()
	case bplist.Seek:
		m.ctrl.Seek(a.Breakpoint.Timepoint)
		m.syncView()
	case bplist.Remove:
		if err := m.session.RemoveBreakpoint(a.Breakpoint); err != nil {
			cmd := m.notifyError(errmsg.OpBreakpointRemove, err)
			return m, cmd
		}
		m.syncView()
	}
	return m, nil
}

// handleTick refreshes the position. Ticks stop while nothing plays and
// restart with playback.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.syncView()
	if m.ctrl.State() != playback.StatePlaying {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd()
}

// ensureTicking starts the refresh loop if playback runs and no tick is
// pending.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || m.ctrl.State() != playback.StatePlaying {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

// syncView pushes session state into the list.
func (m *Model) syncView() {
	m.list.SetBreakpoints(m.session.Breakpoints())
	m.list.SetPosition(m.ctrl.Position())
	m.list.SetSize(m.width, m.listHeight())
}

// openFile replaces the session with path and resumes where it was left.
func (m *Model) openFile(path string) tea.Cmd {
	path = m.cfg.ResolvePath(path)
	if m.session.Loaded() {
		m.recordRecent()
	}
	if err := m.session.Open(path); err != nil {
		slog.Warn("open file", "path", path, "err", err)
		return m.notifyError(errmsg.OpFileOpen, err)
	}

	if recent, err := m.state.GetRecent(path); err != nil {
		slog.Warn("lookup recent file", "path", path, "err", err)
	} else if recent != nil && recent.Position > 0 {
		m.ctrl.Seek(recent.Position)
	}
	m.recordRecent()
	m.refreshRecent()
	m.announceTrack()
	m.syncView()
	m.list.SelectTimepoint(m.ctrl.Position())
	return m.notify("Opened "+m.session.Title(), LevelInfo)
}

// closeFile unloads the session and shows the start screen.
func (m *Model) closeFile() {
	m.recordRecent()
	m.session.Close()
	m.refreshRecent()
	m.announceTrack()
	m.syncView()
}

// save writes the session to path, or to its default save path when empty.
func (m *Model) save(path string) tea.Cmd {
	if path == "" {
		path = m.session.DefaultSavePath()
	} else {
		path = m.cfg.ResolvePath(path)
	}
	written, err := m.session.Save(path)
	if err != nil {
		slog.Warn("save file", "path", path, "err", err)
		return m.notifyError(errmsg.OpFileSave, err)
	}
	return m.notify("Saved "+written+" ("+humanBytes(m.session.AudioSize())+" audio)", LevelInfo)
}

// exportChapters writes the audio with chapter tags to path.
func (m *Model) exportChapters(path string) tea.Cmd {
	path = m.cfg.ResolvePath(path)
	if err := m.session.ExportChapters(path); err != nil {
		slog.Warn("export chapters", "path", path, "err", err)
		return m.notifyError(errmsg.OpChaptersExport, err)
	}
	n := len(m.session.Breakpoints())
	return m.notify("Exported "+english.Plural(n, "breakpoint", "")+" as chapters to "+path, LevelInfo)
}

// quit saves state and stops the program.
func (m *Model) quit() tea.Cmd {
	m.recordRecent()
	m.saveSettings()
	return tea.Quit
}

func (m *Model) saveSettings() {
	m.state.SaveSettings(stateSettings(m.ctrl))
}

// isUserError reports errors the user caused, which need no log entry.
func isUserError(err error) bool {
	return errors.Is(err, playback.ErrNothingLoaded)
}
