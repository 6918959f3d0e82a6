package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent periodically while playing to refresh the position and
// detect the end of the track.
type TickMsg time.Time

// tickInterval is how often the position display is refreshed.
const tickInterval = 200 * time.Millisecond

// StderrMsg is sent when stderr output is captured from the audio backend.
type StderrMsg struct {
	Line string
}

// OpenFileMsg asks the model to open a file.
type OpenFileMsg struct {
	Path string
}

// NotificationLevel selects the notification style.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelError
)

// Notification is a transient message shown above the player bar.
type Notification struct {
	ID      int64
	Message string
	Level   NotificationLevel
}

// NotificationClearMsg removes a notification after its display time.
type NotificationClearMsg struct {
	ID int64
}

// maxNotifications is how many notifications are shown at once.
const maxNotifications = 3

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func notificationClearCmd(id int64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}

// watchStderr waits for the next captured stderr line.
func watchStderr(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return OpenFileMsg{Path: path}
	}
}
