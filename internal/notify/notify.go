// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
)

// Urgency is a freedesktop notification priority level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// AppName is reported as the sending application.
const AppName = "bpplay"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Finished builds the notice shown when a file has played to its end.
func Finished(title string, breakpoints int) Notification {
	body := "No breakpoints"
	if breakpoints > 0 {
		body = fmt.Sprintf("%s marked", english.Plural(breakpoints, "breakpoint", ""))
	}
	return Notification{
		Title:   "Finished " + title,
		Body:    body,
		Icon:    "media-playback-stop",
		Timeout: 5000,
		Urgency: UrgencyLow,
	}
}

// Replacer sends notifications that replace the previous one it sent, so
// at most one bpplay notice is on screen.
type Replacer struct {
	notifier Notifier
	last     uint32
}

// NewReplacer wraps n. A nil n sends nothing.
func NewReplacer(n Notifier) *Replacer {
	return &Replacer{notifier: n}
}

// Send shows n in place of the last notice.
func (r *Replacer) Send(n Notification) error {
	if r == nil || r.notifier == nil {
		return nil
	}
	n.ReplacesID = r.last
	id, err := r.notifier.Notify(n)
	if err != nil {
		return err
	}
	if id != 0 {
		r.last = id
	}
	return nil
}
