package player

import (
	"io"
	"time"
)

// MockSource is a Source with a fixed length used by Mock.
type MockSource struct {
	Length time.Duration
	Offset time.Duration
}

// Duration returns the remaining length.
func (s *MockSource) Duration() time.Duration { return s.Length - s.Offset }

// From returns a source starting offset into this one.
func (s *MockSource) From(offset time.Duration) Source {
	return &MockSource{Length: s.Length, Offset: min(s.Offset+max(offset, 0), s.Length)}
}

// Mock is a test double for Device.
type Mock struct {
	paused       bool
	queue        []*MockSource
	volume       float64
	speed        float64
	sourceLength time.Duration
	decodeErr    error
	decoded      [][]byte
	enqueueCalls int
	clearCalls   int
	closed       bool
	drained      chan error
}

// NewMock creates a paused mock device producing 60s sources.
func NewMock() *Mock {
	return &Mock{
		paused:       true,
		volume:       1,
		speed:        1,
		sourceLength: time.Minute,
		drained:      make(chan error, 1),
	}
}

func (m *Mock) Decode(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, decodeErr(IO, err)
	}
	m.decoded = append(m.decoded, data)
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}
	return &MockSource{Length: m.sourceLength}, nil
}

func (m *Mock) Enqueue(src Source) {
	m.enqueueCalls++
	if ms, ok := src.(*MockSource); ok {
		m.queue = append(m.queue, ms)
	}
}

func (m *Mock) ClearQueue() {
	m.clearCalls++
	m.queue = nil
}

func (m *Mock) Play() { m.paused = false }

func (m *Mock) Pause() { m.paused = true }

func (m *Mock) IsPaused() bool { return m.paused }

func (m *Mock) IsEmpty() bool { return len(m.queue) == 0 }

func (m *Mock) Drained() <-chan error { return m.drained }

func (m *Mock) SetVolume(level float64) { m.volume = clampLevel(level) }

func (m *Mock) SetSpeed(factor float64) {
	if factor > 0 {
		m.speed = factor
	}
}

func (m *Mock) Close() {
	m.closed = true
	m.queue = nil
}

// Test helpers

func (m *Mock) SetDecodeError(err error) { m.decodeErr = err }

func (m *Mock) SetSourceLength(d time.Duration) { m.sourceLength = d }

func (m *Mock) Queue() []*MockSource { return m.queue }

func (m *Mock) Decoded() [][]byte { return m.decoded }

func (m *Mock) EnqueueCalls() int { return m.enqueueCalls }

func (m *Mock) ClearCalls() int { return m.clearCalls }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) Speed() float64 { return m.speed }

func (m *Mock) Closed() bool { return m.closed }

// SimulateFinished drains the queue as if playback reached the end.
func (m *Mock) SimulateFinished() { m.SimulateFailure(nil) }

// SimulateFailure drains the queue as if the source stopped with err.
func (m *Mock) SimulateFailure(err error) {
	m.queue = nil
	select {
	case m.drained <- err:
	default:
	}
}
