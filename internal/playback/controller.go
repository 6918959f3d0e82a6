// Package playback drives a player.Device and keeps its position.
//
// The device does not report where it is in the source, so the Controller
// tracks position with a timer.Timer that is started and paused together
// with the device.
package playback

import (
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/llehouerou/bpplay/internal/player"
	"github.com/llehouerou/bpplay/internal/timer"
)

// Sentinel errors.
var (
	ErrNothingLoaded = errors.New("nothing loaded")
	ErrInvalidSpeed  = errors.New("invalid speed")
)

const (
	DefaultVolume = 100
	DefaultSpeed  = 1.0
)

// Controller owns the loaded source and the playback state.
//
// Invariant: state == StatePlaying iff the device is unpaused iff the timer
// is running.
type Controller struct {
	mu sync.Mutex

	device   player.Device
	timer    timer.Timer
	source   player.Source
	duration time.Duration
	state    State
	volume   int
	speed    float64

	subs   []*Subscription
	closed bool
}

// New creates an empty controller on device.
func New(device player.Device) *Controller {
	device.Pause()
	device.SetVolume(1)
	device.SetSpeed(DefaultSpeed)
	return &Controller{
		device: device,
		volume: DefaultVolume,
		speed:  DefaultSpeed,
	}
}

// Load decodes r and replaces the current source. The controller ends
// Paused at position 0. On failure nothing changes.
func (c *Controller) Load(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, err := c.device.Decode(r)
	if err != nil {
		c.emitError("load", err)
		return err
	}
	c.loadLocked(src)
	return nil
}

// LoadSource replaces the current source with an already decoded one.
func (c *Controller) LoadSource(src player.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(src)
}

func (c *Controller) loadLocked(src player.Source) {
	prev := c.state
	c.stopLocked()
	c.device.ClearQueue()
	c.timer.Clear()
	c.source = src
	c.duration = src.Duration()
	c.device.Enqueue(src)
	c.state = StatePaused
	c.emitState(prev, false)
	c.emitPosition(0)
}

// Unload drops the current source and returns to StateEmpty.
func (c *Controller) Unload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateEmpty {
		return
	}
	prev := c.state
	c.stopLocked()
	c.device.ClearQueue()
	c.timer.Clear()
	c.source = nil
	c.duration = 0
	c.state = StateEmpty
	c.emitState(prev, false)
}

// Play starts or resumes playback. A source that already ended restarts
// from the beginning.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked()
}

func (c *Controller) playLocked() error {
	switch c.state {
	case StateEmpty:
		return ErrNothingLoaded
	case StatePlaying:
		return nil
	case StatePaused:
	}

	if c.device.IsEmpty() {
		c.requeueLocked(0)
		c.timer.Clear()
		c.emitPosition(0)
	}
	c.device.Play()
	c.timer.Start()
	c.state = StatePlaying
	c.emitState(StatePaused, false)
	return nil
}

// Pause pauses playback, keeping the position.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pauseLocked()
}

func (c *Controller) pauseLocked() error {
	switch c.state {
	case StateEmpty:
		return ErrNothingLoaded
	case StatePaused:
		return nil
	case StatePlaying:
	}
	c.stopLocked()
	c.state = StatePaused
	c.emitState(StatePlaying, false)
	return nil
}

// Toggle switches between playing and paused.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePlaying {
		return c.pauseLocked()
	}
	return c.playLocked()
}

// Seek moves to target, clamped to [0, Duration]. The playing or paused
// state is preserved. No-op when nothing is loaded.
func (c *Controller) Seek(target time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(target)
}

// SeekBy moves relative to the current position.
func (c *Controller) SeekBy(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(c.positionLocked() + delta)
}

// Reset moves back to the start, preserving the playing or paused state.
func (c *Controller) Reset() {
	c.Seek(0)
}

func (c *Controller) seekLocked(target time.Duration) {
	if c.state == StateEmpty {
		return
	}
	target = c.clamp(target)

	playing := c.state == StatePlaying
	if playing {
		c.stopLocked()
	}
	c.requeueLocked(target)
	c.timer.Overwrite(target)
	if playing {
		c.device.Play()
		c.timer.Start()
	}
	c.emitPosition(target)
}

// requeueLocked replaces the device queue with the source from offset.
func (c *Controller) requeueLocked(offset time.Duration) {
	c.device.ClearQueue()
	c.device.Enqueue(c.source.From(offset))
}

// stopLocked pauses device and timer together.
func (c *Controller) stopLocked() {
	c.device.Pause()
	c.timer.Pause()
}

// Sync reconciles the state with the device. When the device has played
// the whole queue the controller pauses at the end of the source.
// Returns true if playback finished.
func (c *Controller) Sync() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying || !c.device.IsEmpty() {
		return false
	}
	c.stopLocked()
	c.timer.Overwrite(c.duration)
	c.state = StatePaused
	c.emitState(StatePlaying, true)
	return true
}

// Drained delivers the device's end-of-queue signals. Hand each one to
// Finish on the goroutine that drives the controller.
func (c *Controller) Drained() <-chan error {
	return c.device.Drained()
}

// Finish handles an end-of-queue signal. A non-nil err is published as an
// ErrorEvent; the state is then synced with the device. Returns true if
// playback finished.
func (c *Controller) Finish(err error) bool {
	if err != nil {
		c.mu.Lock()
		c.emitError("play", err)
		c.mu.Unlock()
	}
	return c.Sync()
}

// Position returns the current position, never beyond Duration.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Controller) positionLocked() time.Duration {
	if c.state == StateEmpty {
		return 0
	}
	return c.clamp(c.timer.Read())
}

func (c *Controller) clamp(d time.Duration) time.Duration {
	d = max(d, 0)
	if c.duration > 0 {
		d = min(d, c.duration)
	}
	return d
}

// Duration returns the length of the loaded source, 0 when empty or unknown.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Volume returns the volume percentage (0-100).
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume sets the volume percentage, clamped to 0-100, and returns the
// applied value.
func (c *Controller) SetVolume(pct int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = min(max(pct, 0), 100)
	c.device.SetVolume(float64(c.volume) / 100)
	return c.volume
}

// Speed returns the playback speed factor.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetSpeed changes the playback speed. The timer rate follows so Position
// stays in source time.
func (c *Controller) SetSpeed(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = factor
	c.device.SetSpeed(factor)
	c.timer.SetRate(factor)
	return nil
}

// Subscribe returns a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close releases the device and ends all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.timer.Pause()
	c.device.Close()
	c.source = nil
	c.duration = 0
	c.state = StateEmpty
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
}

func (c *Controller) emitState(prev State, finished bool) {
	if prev == c.state && !finished {
		return
	}
	e := StateChange{Previous: prev, Current: c.state, Finished: finished}
	for _, sub := range c.subs {
		sub.sendState(e)
	}
}

func (c *Controller) emitPosition(pos time.Duration) {
	for _, sub := range c.subs {
		sub.sendPosition(pos)
	}
}

func (c *Controller) emitError(op string, err error) {
	e := ErrorEvent{Operation: op, Err: err}
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}
