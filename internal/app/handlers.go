package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/app/handler"
	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/chapters"
	"github.com/llehouerou/bpplay/internal/errmsg"
	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/session"
	"github.com/llehouerou/bpplay/internal/ui/textinput"
)

// volumeStep is the change per volume key press, in percent.
const volumeStep = 5

// Confirm contexts.
type (
	confirmQuit  struct{}
	confirmClose struct{}
	confirmClear struct{}
	confirmOpen  struct{ path string }
)

// Prompt contexts.
type (
	inputOpen   struct{}
	inputSaveAs struct{}
	inputExport struct{}
	inputHint   struct{ at time.Duration }
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.popups.HandleKey(msg); handled {
		return m, cmd
	}

	a := m.keys.Resolve(msg.String())
	if a == "" {
		return m, nil
	}

	_, cmd := handler.Chain(
		func() handler.Result { return m.handleGlobalKeys(a) },
		func() handler.Result { return m.handlePlaybackKeys(a) },
		func() handler.Result { return m.handleBreakpointKeys(a) },
		func() handler.Result { return m.handleListKeys(a) },
	)
	return m, cmd
}

// handleGlobalKeys handles quit, help and file operations.
func (m *Model) handleGlobalKeys(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // other actions go to later handlers
	case keymap.ActionQuit:
		if m.session.Dirty() && m.cfg.ConfirmExitEnabled() {
			m.popups.ShowConfirm(unsavedRequest("Quit", confirmQuit{}))
			return handler.HandledNoCmd
		}
		return handler.Handled(m.quit())

	case keymap.ActionHelp:
		m.popups.ShowHelp()
		return handler.HandledNoCmd

	case keymap.ActionOpen:
		return handler.Handled(m.popups.ShowTextInput(textinput.Options{
			Title:       "Open file",
			Placeholder: "audio or " + session.SaveExtension + " file",
			Initial:     m.startDir(),
			Context:     inputOpen{},
		}))

	case keymap.ActionSave:
		if !m.session.Loaded() {
			return handler.Handled(m.notifyError(errmsg.OpFileSave, playback.ErrNothingLoaded))
		}
		return handler.Handled(m.save(""))

	case keymap.ActionSaveAs:
		if !m.session.Loaded() {
			return handler.Handled(m.notifyError(errmsg.OpFileSave, playback.ErrNothingLoaded))
		}
		return handler.Handled(m.popups.ShowTextInput(textinput.Options{
			Title:   "Save as",
			Initial: m.session.DefaultSavePath(),
			Context: inputSaveAs{},
		}))

	case keymap.ActionExportChapters:
		switch {
		case !m.session.Loaded():
			return handler.Handled(m.notifyError(errmsg.OpChaptersExport, playback.ErrNothingLoaded))
		case !m.session.CanExportChapters():
			return handler.Handled(m.notifyError(errmsg.OpChaptersExport, chapters.ErrUnsupportedFormat))
		case len(m.session.Breakpoints()) == 0:
			return handler.Handled(m.notifyError(errmsg.OpChaptersExport, session.ErrNoBreakpoint))
		}
		return handler.Handled(m.popups.ShowTextInput(textinput.Options{
			Title:   "Export with chapters",
			Initial: m.session.DefaultChapterPath(),
			Context: inputExport{},
		}))

	case keymap.ActionClose:
		if !m.session.Loaded() {
			return handler.HandledNoCmd
		}
		if m.session.Dirty() {
			m.popups.ShowConfirm(unsavedRequest("Close", confirmClose{}))
			return handler.HandledNoCmd
		}
		m.closeFile()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handlePlaybackKeys handles transport, volume and speed.
func (m *Model) handlePlaybackKeys(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // other actions go to later handlers
	case keymap.ActionPlayPause:
		if err := m.ctrl.Toggle(); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpPlaybackStart, err))
		}
		m.syncView()
		return handler.Handled(m.ensureTicking())

	case keymap.ActionReset:
		m.ctrl.Reset()
		m.syncView()
		return handler.HandledNoCmd

	case keymap.ActionSeekBack, keymap.ActionSeekForward:
		if !m.session.Loaded() {
			return handler.Handled(m.notifyError(errmsg.OpPlaybackSeek, playback.ErrNothingLoaded))
		}
		step := m.cfg.GetSeekStep()
		if a == keymap.ActionSeekBack {
			step = -step
		}
		m.ctrl.SeekBy(step)
		m.syncView()
		return handler.HandledNoCmd

	case keymap.ActionVolumeUp, keymap.ActionVolumeDown:
		delta := volumeStep
		if a == keymap.ActionVolumeDown {
			delta = -delta
		}
		m.ctrl.SetVolume(m.ctrl.Volume() + delta)
		m.saveSettings()
		return handler.HandledNoCmd

	case keymap.ActionSpeedUp, keymap.ActionSpeedDown:
		next := stepSpeed(m.cfg.GetSpeeds(), m.ctrl.Speed(), a == keymap.ActionSpeedUp)
		if err := m.ctrl.SetSpeed(next); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpPlaybackSpeed, err))
		}
		m.saveSettings()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// stepSpeed returns the configured speed after (or before) current. The
// ends of the list are sticky.
func stepSpeed(speeds []float64, current float64, up bool) float64 {
	if len(speeds) == 0 {
		return current
	}
	if up {
		for _, s := range speeds {
			if s > current+1e-9 {
				return s
			}
		}
		return speeds[len(speeds)-1]
	}
	for i := len(speeds) - 1; i >= 0; i-- {
		if speeds[i] < current-1e-9 {
			return speeds[i]
		}
	}
	return speeds[0]
}

// handleBreakpointKeys handles breakpoint editing and navigation.
func (m *Model) handleBreakpointKeys(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // other actions go to later handlers
	case keymap.ActionPrevBreakpoint:
		bp, err := m.session.JumpPrevious()
		return handler.Handled(m.afterJump(bp, err))

	case keymap.ActionNextBreakpoint:
		bp, err := m.session.JumpNext()
		return handler.Handled(m.afterJump(bp, err))

	case keymap.ActionAddBreakpoint:
		bp, err := m.session.AddBreakpoint("")
		if err != nil {
			return handler.Handled(m.notifyError(errmsg.OpBreakpointAdd, err))
		}
		m.syncView()
		m.list.SelectTimepoint(bp.Timepoint)
		return handler.HandledNoCmd

	case keymap.ActionAddWithHint:
		if !m.session.Loaded() {
			return handler.Handled(m.notifyError(errmsg.OpBreakpointAdd, playback.ErrNothingLoaded))
		}
		at := m.ctrl.Position().Truncate(time.Millisecond)
		return handler.Handled(m.popups.ShowTextInput(textinput.Options{
			Title:       "Breakpoint at " + breakpoint.FormatTimepoint(at),
			Placeholder: "hint (optional)",
			CharLimit:   m.cfg.GetHintLimit(),
			Context:     inputHint{at: at},
		}))

	case keymap.ActionRemoveNearest:
		if _, err := m.session.RemoveNearest(); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpBreakpointRemove, err))
		}
		m.syncView()
		return handler.HandledNoCmd

	case keymap.ActionClearBreakpoints:
		n := len(m.session.Breakpoints())
		if n == 0 {
			return handler.Handled(m.notifyError(errmsg.OpBreakpointClear, session.ErrNoBreakpoint))
		}
		m.popups.ShowConfirm(clearRequest(n))
		return handler.HandledNoCmd

	case keymap.ActionUndo:
		if err := m.session.Undo(); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpUndo, err))
		}
		m.syncView()
		return handler.HandledNoCmd

	case keymap.ActionRedo:
		if err := m.session.Redo(); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpRedo, err))
		}
		m.syncView()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) afterJump(bp breakpoint.Breakpoint, err error) tea.Cmd {
	if err != nil {
		return m.notifyError(errmsg.OpBreakpointJump, err)
	}
	m.syncView()
	m.list.SelectTimepoint(bp.Timepoint)
	return nil
}

// handleListKeys drives the breakpoint list, or the recent files while
// nothing is open.
func (m *Model) handleListKeys(a keymap.Action) handler.Result {
	if m.session.Loaded() {
		if handled, cmd := m.list.HandleAction(a); handled {
			return handler.Handled(cmd)
		}
		return handler.NotHandled
	}

	switch a { //nolint:exhaustive // only list actions
	case keymap.ActionSelect:
		if f := m.selectedRecent(); f != nil {
			return handler.Handled(m.openFile(f.Path))
		}
		return handler.HandledNoCmd
	case keymap.ActionDelete:
		if f := m.selectedRecent(); f != nil {
			m.forgetRecent(f.Path)
		}
		return handler.HandledNoCmd
	}
	if m.handleRecentAction(a) {
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}
