// Package player provides the audio output the playback controller drives.
package player

import (
	"io"
	"time"
)

// Source is decoded audio kept in memory so it can be replayed from any offset.
type Source interface {
	// Duration returns the total length, or 0 when unknown.
	Duration() time.Duration
	// From returns a source starting offset into this one.
	// Offsets past the end yield an empty source.
	From(offset time.Duration) Source
}

// Device decodes audio and plays queued sources.
//
// Devices do not report a playback position; callers track time themselves.
type Device interface {
	Decode(r io.Reader) (Source, error)
	Enqueue(src Source)
	ClearQueue()
	Play()
	Pause()
	IsPaused() bool
	IsEmpty() bool
	// Drained receives when the last queued source ends: nil at a clean
	// end, the decoder error when the source failed. Signals may be
	// coalesced, so receivers recheck IsEmpty.
	Drained() <-chan error
	// SetVolume sets the output level from 0.0 to 1.0.
	SetVolume(level float64)
	// SetSpeed sets the playback speed factor, 1.0 being normal.
	SetSpeed(factor float64)
	Close()
}

// Verify implementations at compile time.
var (
	_ Device = (*Speaker)(nil)
	_ Device = (*Mock)(nil)
)
