// Package app is the bubbletea model tying the session, the playback
// controller and the UI components together.
package app

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/config"
	"github.com/llehouerou/bpplay/internal/keymap"
	"github.com/llehouerou/bpplay/internal/notify"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/session"
	"github.com/llehouerou/bpplay/internal/state"
	"github.com/llehouerou/bpplay/internal/ui/bplist"
)

// Options wires a Model.
type Options struct {
	Config  *config.Config
	Session *session.Session
	State   state.Interface
	// Stderr carries lines captured from the audio backend; may be nil.
	Stderr <-chan string
	// OpenPath is opened on start when set.
	OpenPath string
	// Remote delivers media control requests; may be nil.
	Remote Remote
	// Notifier shows a desktop notice when a file finishes; may be nil.
	Notifier notify.Notifier
}

// Model is the root application model.
type Model struct {
	cfg     *config.Config
	session *session.Session
	ctrl    *playback.Controller
	keys    *keymap.Resolver
	state   state.Interface
	stderr  <-chan string
	remote  Remote
	desktop *notify.Replacer
	events  *playback.Subscription

	initialPath string

	list   bplist.Model
	recent recentList
	popups PopupManager

	notifications      []Notification
	nextNotificationID int64

	width, height int
	ticking       bool
}

// New creates the model and restores the saved volume and speed.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	m := Model{
		cfg:         cfg,
		session:     opts.Session,
		ctrl:        opts.Session.Controller(),
		keys:        keymap.NewResolver(keymap.Bindings),
		state:       opts.State,
		stderr:      opts.Stderr,
		remote:      opts.Remote,
		events:      opts.Session.Controller().Subscribe(),
		initialPath: opts.OpenPath,
		list:        bplist.New(),
		popups:      NewPopupManager(),
	}
	m.list.SetFocused(true)
	if opts.Notifier != nil {
		m.desktop = notify.NewReplacer(opts.Notifier)
	}

	m.ctrl.SetVolume(cfg.GetDefaultVolume())
	if settings, err := m.state.GetSettings(); err != nil {
		slog.Warn("load settings", "err", err)
	} else if settings != nil {
		m.ctrl.SetVolume(settings.Volume)
		if err := m.ctrl.SetSpeed(settings.Speed); err != nil {
			slog.Warn("restore speed", "speed", settings.Speed, "err", err)
		}
	}
	m.refreshRecent()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		watchStderr(m.stderr),
		watchRemote(m.remote),
		watchDrained(m.ctrl),
		watchPlayback(m.events),
	}
	if m.initialPath != "" {
		cmds = append(cmds, openFileCmd(m.initialPath))
	}
	return tea.Batch(cmds...)
}

// startDir is where the open prompt starts: the open file's folder, the
// configured folder, or the working directory.
func (m Model) startDir() string {
	if p := m.session.Path(); p != "" {
		return dirWithSlash(p)
	}
	if m.cfg.DefaultFolder != "" {
		return withSlash(m.cfg.DefaultFolder)
	}
	if wd, err := os.Getwd(); err == nil {
		return withSlash(wd)
	}
	return ""
}
