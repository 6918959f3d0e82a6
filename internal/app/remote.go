package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/app/handler"
	"github.com/llehouerou/bpplay/internal/errmsg"
	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/mpris"
	"github.com/llehouerou/bpplay/internal/playback"
)

// Remote is an outside controller, such as desktop media keys.
// *mpris.Adapter implements it.
type Remote interface {
	Commands() <-chan mpris.Command
	SetTrack(t *mpris.Track)
}

func watchRemote(r Remote) tea.Cmd {
	if r == nil {
		return nil
	}
	commands := r.Commands()
	if commands == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-commands
		if !ok {
			return nil
		}
		return c
	}
}

// handleRemote runs a media control request through the same handlers
// as the matching key.
func (m Model) handleRemote(c mpris.Command) (tea.Model, tea.Cmd) {
	r := m.runRemote(c)
	m.syncView()
	cmd := tea.Batch(r.Cmd, m.ensureTicking(), watchRemote(m.remote))
	return m, cmd
}

func (m *Model) runRemote(c mpris.Command) handler.Result {
	state := m.ctrl.State()
	switch c.Kind {
	case mpris.CommandPlayPause:
		return m.handlePlaybackKeys(keymap.ActionPlayPause)
	case mpris.CommandPlay:
		if state != playback.StatePlaying {
			return m.handlePlaybackKeys(keymap.ActionPlayPause)
		}
	case mpris.CommandPause:
		if state == playback.StatePlaying {
			return m.handlePlaybackKeys(keymap.ActionPlayPause)
		}
	case mpris.CommandStop:
		if state == playback.StatePlaying {
			_ = m.ctrl.Pause()
		}
		m.ctrl.Reset()
	case mpris.CommandNext:
		return m.handleBreakpointKeys(keymap.ActionNextBreakpoint)
	case mpris.CommandPrevious:
		return m.handleBreakpointKeys(keymap.ActionPrevBreakpoint)
	case mpris.CommandSeek:
		m.ctrl.SeekBy(c.Offset)
	case mpris.CommandSetPosition:
		m.ctrl.Seek(c.Offset)
	case mpris.CommandSetVolume:
		m.ctrl.SetVolume(c.Volume)
		m.saveSettings()
	case mpris.CommandSetRate:
		if err := m.ctrl.SetSpeed(c.Rate); err != nil {
			return handler.Handled(m.notifyError(errmsg.OpPlaybackSpeed, err))
		}
		m.saveSettings()
	}
	return handler.HandledNoCmd
}

// announceTrack tells the remote what is open.
func (m *Model) announceTrack() {
	if m.remote == nil {
		return
	}
	if !m.session.Loaded() {
		m.remote.SetTrack(nil)
		return
	}
	t := &mpris.Track{Path: m.session.Path(), Title: m.session.Title()}
	if info := m.session.TrackInfo(); info != nil {
		t.Artist = info.Artist
		t.Album = info.Album
	}
	m.remote.SetTrack(t)
}
