package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/errmsg"
	"github.com/llehouerou/bpplay/internal/notify"
	"github.com/llehouerou/bpplay/internal/playback"
)

// DrainedMsg is sent when the audio device runs out of queued audio.
type DrainedMsg struct {
	Err error
}

// PlaybackStateMsg carries a controller state change.
type PlaybackStateMsg playback.StateChange

// PlaybackPositionMsg is sent when a seek or reset moves the position.
type PlaybackPositionMsg playback.PositionChange

// PlaybackErrorMsg carries a failure reported by the controller.
type PlaybackErrorMsg playback.ErrorEvent

// watchDrained waits for the next end-of-queue signal from the device.
func watchDrained(ctrl *playback.Controller) tea.Cmd {
	drained := ctrl.Drained()
	if drained == nil {
		return nil
	}
	return func() tea.Msg {
		return DrainedMsg{Err: <-drained}
	}
}

// watchPlayback waits for the next controller event. It stops once the
// controller is closed.
func watchPlayback(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return PlaybackStateMsg(e)
		case e := <-sub.PositionChanged:
			return PlaybackPositionMsg(e)
		case e := <-sub.Error:
			return PlaybackErrorMsg(e)
		case <-sub.Done:
			return nil
		}
	}
}

func (m Model) handlePlaybackState(e playback.StateChange) (tea.Model, tea.Cmd) {
	if e.Finished {
		m.recordRecent()
		m.notifyFinished()
	}
	m.syncView()
	cmd := tea.Batch(m.ensureTicking(), watchPlayback(m.events))
	return m, cmd
}

func (m Model) handlePlaybackError(e playback.ErrorEvent) (tea.Model, tea.Cmd) {
	watch := watchPlayback(m.events)
	// The open that asked for a load reports its failure itself.
	if e.Operation == "load" {
		slog.Debug("load failed", "err", e.Err)
		return m, watch
	}
	slog.Warn("playback failed", "op", e.Operation, "err", e.Err)
	cmd := m.notifyError(errmsg.OpPlaybackPlay, e.Err)
	return m, tea.Batch(cmd, watch)
}

// notifyFinished raises a desktop notice for the file that just ended.
func (m *Model) notifyFinished() {
	n := notify.Finished(m.session.Title(), len(m.session.Breakpoints()))
	if err := m.desktop.Send(n); err != nil {
		slog.Warn("desktop notification", "err", err)
		m.desktop = nil
	}
}
