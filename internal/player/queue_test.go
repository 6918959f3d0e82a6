package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockStreamer produces a fixed number of samples then returns ok=false.
type mockStreamer struct {
	samples   int
	sampleVal float64
	produced  int
}

func (m *mockStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := m.samples - m.produced
	if remaining <= 0 {
		return 0, false
	}
	toWrite := min(len(samples), remaining)
	for i := range toWrite {
		samples[i] = [2]float64{m.sampleVal, m.sampleVal}
	}
	m.produced += toWrite
	return toWrite, true
}

func (m *mockStreamer) Err() error { return nil }

func TestQueue_PlaysInOrder(t *testing.T) {
	q := &queue{}
	q.Add(&mockStreamer{samples: 10, sampleVal: 1.0})
	q.Add(&mockStreamer{samples: 10, sampleVal: 2.0})

	buf := make([][2]float64, 20)
	n, ok := q.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 20, n)
	for i := range 10 {
		assert.Equal(t, 1.0, buf[i][0], "sample %d should be from first", i)
	}
	for i := 10; i < 20; i++ {
		assert.Equal(t, 2.0, buf[i][0], "sample %d should be from second", i)
	}
}

func TestQueue_SilenceWhenEmpty(t *testing.T) {
	q := &queue{}

	buf := make([][2]float64, 8)
	for i := range buf {
		buf[i] = [2]float64{0.5, 0.5}
	}
	n, ok := q.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 8, n)
	for i := range buf {
		assert.Equal(t, [2]float64{0, 0}, buf[i])
	}
}

func TestQueue_DrainCallback(t *testing.T) {
	drained := 0
	q := &queue{onDrain: func(err error) {
		assert.NoError(t, err)
		drained++
	}}
	q.Add(&mockStreamer{samples: 5, sampleVal: 1.0})

	buf := make([][2]float64, 10)
	_, _ = q.Stream(buf)

	assert.Equal(t, 1, drained)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 1.0, buf[4][0])
	assert.Equal(t, 0.0, buf[5][0], "remainder should be silence")

	// Streaming an already empty queue does not fire again.
	_, _ = q.Stream(buf)
	assert.Equal(t, 1, drained)
}

func TestQueue_Clear(t *testing.T) {
	q := &queue{}
	q.Add(&mockStreamer{samples: 100, sampleVal: 1.0})
	q.Add(&mockStreamer{samples: 100, sampleVal: 2.0})

	q.Clear()

	assert.Equal(t, 0, q.Len())
	buf := make([][2]float64, 4)
	_, _ = q.Stream(buf)
	assert.Equal(t, 0.0, buf[0][0])
}

// failingStreamer stops immediately and reports err.
type failingStreamer struct{ err error }

func (f *failingStreamer) Stream(_ [][2]float64) (int, bool) { return 0, false }

func (f *failingStreamer) Err() error { return f.err }

func TestQueue_DrainReportsError(t *testing.T) {
	boom := errors.New("corrupt frame")
	var got error
	q := &queue{onDrain: func(err error) { got = err }}
	q.Add(&failingStreamer{err: boom})

	_, _ = q.Stream(make([][2]float64, 4))

	assert.ErrorIs(t, got, boom)
}

func TestSpeaker_DrainedSignal(t *testing.T) {
	s := NewSpeaker(SpeakerOptions{})
	s.queue.Add(&mockStreamer{samples: 3, sampleVal: 1.0})
	s.queue.Add(&mockStreamer{samples: 3, sampleVal: 1.0})

	buf := make([][2]float64, 4)
	_, _ = s.queue.Stream(buf)
	select {
	case <-s.Drained():
		t.Fatal("signal before the last source ended")
	default:
	}

	_, _ = s.queue.Stream(buf)
	select {
	case err := <-s.Drained():
		assert.NoError(t, err)
	default:
		t.Fatal("expected a drained signal")
	}
	assert.True(t, s.IsEmpty())
}

func TestSpeaker_DrainedSignalsCoalesce(t *testing.T) {
	s := NewSpeaker(SpeakerOptions{})
	buf := make([][2]float64, 4)
	for range 3 {
		s.queue.Add(&mockStreamer{samples: 1})
		_, _ = s.queue.Stream(buf)
	}

	<-s.Drained()
	select {
	case <-s.Drained():
		t.Error("pending signals should coalesce into one")
	default:
	}
}
