package player

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const resampleQuality = 4

// The speaker is process-wide; it is opened once at the rate of the first
// decoded source.
var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// SpeakerOptions configures a Speaker.
type SpeakerOptions struct {
	// MaxBuffered caps the decoded length of a source. Zero means no limit.
	MaxBuffered time.Duration
	// Resample converts sources whose rate differs from the opened speaker.
	// When false such sources fail to decode with ResetRequired.
	Resample bool
}

// Speaker is a Device playing through the system audio output.
type Speaker struct {
	opts SpeakerOptions

	queue     *queue
	drained   chan error
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume

	paused bool
	level  float64
	speed  float64
}

// NewSpeaker creates a paused speaker device. The audio output is opened
// lazily by the first successful Decode.
func NewSpeaker(opts SpeakerOptions) *Speaker {
	s := &Speaker{
		opts:    opts,
		drained: make(chan error, 1),
		paused:  true,
		level:   1,
		speed:   1,
	}
	s.queue = &queue{onDrain: s.signalDrained}
	return s
}

// signalDrained runs on the audio goroutine, so it never blocks. A signal
// still pending is enough to wake the reader.
func (s *Speaker) signalDrained(err error) {
	select {
	case s.drained <- err:
	default:
	}
}

// Drained receives once each time the queue runs out.
func (s *Speaker) Drained() <-chan error {
	return s.drained
}

// Decode reads r fully and decodes it into a replayable source.
func (s *Speaker) Decode(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeErr(IO, err)
	}

	buf, err := decodeBuffered(data, s.opts.MaxBuffered)
	if err != nil {
		return nil, err
	}

	rate := buf.Format().SampleRate
	if speakerInitialized && rate != speakerSampleRate && !s.opts.Resample {
		return nil, decodeErr(ResetRequired,
			fmt.Errorf("output opened at %d Hz, source is %d Hz", speakerSampleRate, rate))
	}
	if err := s.open(rate); err != nil {
		return nil, decodeErr(IO, fmt.Errorf("open audio output: %w", err))
	}

	return &bufferedSource{buf: buf}, nil
}

// open initializes the speaker and attaches the effect chain once.
func (s *Speaker) open(rate beep.SampleRate) error {
	if !speakerInitialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return err
		}
		speakerInitialized = true
		speakerSampleRate = rate
	}
	if s.volume != nil {
		return nil
	}

	s.resampler = beep.ResampleRatio(resampleQuality, s.speed, s.queue)
	s.ctrl = &beep.Ctrl{Streamer: s.resampler, Paused: s.paused}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}
	speaker.Play(s.volume)
	return nil
}

// Enqueue appends src after any queued source.
func (s *Speaker) Enqueue(src Source) {
	bs, ok := src.(*bufferedSource)
	if !ok {
		return
	}

	var streamer beep.Streamer = bs.streamer()
	if rate := bs.buf.Format().SampleRate; rate != speakerSampleRate {
		streamer = beep.Resample(resampleQuality, rate, speakerSampleRate, streamer)
	}
	s.queue.Add(streamer)
}

// ClearQueue drops all queued sources.
func (s *Speaker) ClearQueue() {
	s.queue.Clear()
}

// Play resumes output.
func (s *Speaker) Play() {
	s.setPaused(false)
}

// Pause suspends output.
func (s *Speaker) Pause() {
	s.setPaused(true)
}

func (s *Speaker) setPaused(paused bool) {
	s.paused = paused
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

// IsPaused reports whether output is suspended.
func (s *Speaker) IsPaused() bool {
	return s.paused
}

// IsEmpty reports whether nothing is left to play.
func (s *Speaker) IsEmpty() bool {
	return s.queue.Len() == 0
}

// SetVolume sets the level (0.0 to 1.0).
func (s *Speaker) SetVolume(level float64) {
	s.level = clampLevel(level)
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = levelToVolume(s.level)
	s.volume.Silent = s.level <= 0
	speaker.Unlock()
}

// SetSpeed changes the playback rate; pitch follows.
func (s *Speaker) SetSpeed(factor float64) {
	if factor <= 0 {
		return
	}
	s.speed = factor
	if s.resampler == nil {
		return
	}
	speaker.Lock()
	s.resampler.SetRatio(factor)
	speaker.Unlock()
}

// Close stops output and releases queued sources.
func (s *Speaker) Close() {
	s.queue.Clear()
	if speakerInitialized {
		speaker.Clear()
		s.volume = nil
		s.ctrl = nil
		s.resampler = nil
	}
}
