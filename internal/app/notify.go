package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/errmsg"
)

// notify shows msg and schedules its removal.
func (m *Model) notify(msg string, level NotificationLevel) tea.Cmd {
	m.nextNotificationID++
	n := Notification{ID: m.nextNotificationID, Message: msg, Level: level}
	m.notifications = append(m.notifications, n)
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
	m.list.SetSize(m.width, m.listHeight())
	return notificationClearCmd(n.ID, m.cfg.GetNotificationDuration())
}

// notifyError reports a failed operation.
func (m *Model) notifyError(op errmsg.Op, err error) tea.Cmd {
	if !isUserError(err) {
		slog.Info(string(op), "err", err)
	}
	return m.notify(errmsg.Format(op, err), LevelError)
}

func (m *Model) clearNotification(id int64) {
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			break
		}
	}
	m.list.SetSize(m.width, m.listHeight())
}
