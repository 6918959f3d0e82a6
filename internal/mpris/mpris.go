//go:build linux

package mpris

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/bpplay/internal/playback"
)

// Adapter connects playback to MPRIS over D-Bus.
type Adapter struct {
	server   *server.Server
	player   *playerAdapter
	commands queue
}

// New creates and starts an adapter reporting status.
func New(status Status, opts Options) (*Adapter, error) {
	opts = opts.withDefaults()
	commands := make(queue, commandBuffer)
	player := &playerAdapter{status: status, commands: commands, opts: opts}
	a := &Adapter{
		player:   player,
		commands: commands,
		server:   server.NewServer(opts.Name, &rootAdapter{opts: opts}, player),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Commands returns the requests sent by media controllers.
func (a *Adapter) Commands() <-chan Command {
	return a.commands
}

// SetTrack updates the reported metadata. A nil track means nothing is
// open.
func (a *Adapter) SetTrack(t *Track) {
	a.player.setTrack(t)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	opts Options
}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil // the app asks about unsaved breakpoints itself
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return r.opts.Identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return r.opts.MimeTypes, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	status   Status
	commands queue
	opts     Options

	mu    sync.Mutex
	track *Track
}

func (p *playerAdapter) setTrack(t *Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t == nil {
		p.track = nil
		return
	}
	c := *t
	p.track = &c
}

func (p *playerAdapter) currentTrack() *Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

func (p *playerAdapter) send(c Command) error {
	p.commands.push(c)
	return nil
}

func (p *playerAdapter) Next() error {
	return p.send(Command{Kind: CommandNext})
}

func (p *playerAdapter) Previous() error {
	return p.send(Command{Kind: CommandPrevious})
}

func (p *playerAdapter) Pause() error {
	return p.send(Command{Kind: CommandPause})
}

func (p *playerAdapter) PlayPause() error {
	return p.send(Command{Kind: CommandPlayPause})
}

func (p *playerAdapter) Stop() error {
	return p.send(Command{Kind: CommandStop})
}

func (p *playerAdapter) Play() error {
	return p.send(Command{Kind: CommandPlay})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.send(Command{Kind: CommandSeek, Offset: time.Duration(offset) * time.Microsecond})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.send(Command{Kind: CommandSetPosition, Offset: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.status.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateEmpty:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.status.Speed(), nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	if rate < p.opts.MinRate || rate > p.opts.MaxRate {
		return nil
	}
	return p.send(Command{Kind: CommandSetRate, Rate: rate})
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.currentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackID(track.Path)),
		Length:  types.Microseconds(p.status.Duration().Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
		Url:     "file://" + track.Path,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.status.Volume()) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.send(Command{Kind: CommandSetVolume, Volume: volumePercent(v)})
}

func (p *playerAdapter) Position() (int64, error) {
	return p.status.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return p.opts.MinRate, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return p.opts.MaxRate, nil
}

// Next and Previous jump between breakpoints.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.status.State().IsLoaded(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.status.State().IsLoaded(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.status.State().IsLoaded(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.status.State().IsLoaded(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
