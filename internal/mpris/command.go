// Package mpris exposes playback to desktop media controls (media keys,
// panel widgets) through the MPRIS D-Bus interface.
//
// Requests arrive on a D-Bus goroutine. They are not applied directly:
// the Adapter turns them into Commands that the UI loop reads from
// Commands() and runs through the same paths as key presses.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/llehouerou/bpplay/internal/playback"
)

// CommandKind identifies a media control request.
type CommandKind int

const (
	CommandPlayPause CommandKind = iota
	CommandPlay
	CommandPause
	CommandStop
	CommandNext
	CommandPrevious
	CommandSeek
	CommandSetPosition
	CommandSetVolume
	CommandSetRate
)

func (k CommandKind) String() string {
	switch k {
	case CommandPlayPause:
		return "play-pause"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandStop:
		return "stop"
	case CommandNext:
		return "next"
	case CommandPrevious:
		return "previous"
	case CommandSeek:
		return "seek"
	case CommandSetPosition:
		return "set-position"
	case CommandSetVolume:
		return "set-volume"
	case CommandSetRate:
		return "set-rate"
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a media control request.
type Command struct {
	Kind CommandKind
	// Offset is relative for CommandSeek and absolute for
	// CommandSetPosition.
	Offset time.Duration
	// Volume is a percentage for CommandSetVolume.
	Volume int
	// Rate is the speed factor for CommandSetRate.
	Rate float64
}

// Status is the read side of playback the adapter reports.
// *playback.Controller implements it.
type Status interface {
	State() playback.State
	Position() time.Duration
	Duration() time.Duration
	Volume() int
	Speed() float64
}

// Track describes the open file.
type Track struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// Options configures an Adapter.
type Options struct {
	// Name is the D-Bus bus name suffix (org.mpris.MediaPlayer2.<Name>).
	Name string
	// Identity is the human readable player name.
	Identity string
	// MinRate and MaxRate bound the speeds a controller may request.
	MinRate, MaxRate float64
	// MimeTypes lists the audio types the player opens.
	MimeTypes []string
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "bpplay"
	}
	if o.Identity == "" {
		o.Identity = "bpplay"
	}
	if o.MinRate <= 0 {
		o.MinRate = 1
	}
	if o.MaxRate < o.MinRate {
		o.MaxRate = o.MinRate
	}
	return o
}

// commandBuffer is how many requests may wait for the UI loop.
const commandBuffer = 16

// queue delivers commands without ever blocking the D-Bus goroutine.
type queue chan Command

func (q queue) push(c Command) bool {
	select {
	case q <- c:
		return true
	default:
		return false
	}
}

// volumePercent converts an MPRIS volume (0.0-1.0, may overshoot) to a
// clamped percentage.
func volumePercent(v float64) int {
	return min(max(int(v*100+0.5), 0), 100)
}

func trackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
