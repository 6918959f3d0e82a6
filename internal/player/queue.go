package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*queue)(nil)

// queue plays streamers back to back and outputs silence once drained,
// so it can stay attached to the speaker for the whole session.
type queue struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	onDrain   func(err error) // called when the last streamer finishes, with its error
}

// Stream implements beep.Streamer.
func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	filled := 0
	for filled < len(samples) {
		if len(q.streamers) == 0 {
			clear(samples[filled:])
			break
		}

		got, more := q.streamers[0].Stream(samples[filled:])
		filled += got
		if !more {
			err := q.streamers[0].Err()
			q.streamers[0] = nil
			q.streamers = q.streamers[1:]
			if len(q.streamers) == 0 && q.onDrain != nil {
				q.onDrain(err)
			}
		}
	}

	return len(samples), true
}

// Err implements beep.Streamer.
func (q *queue) Err() error {
	return nil
}

// Add appends a streamer to play after those already queued.
func (q *queue) Add(s beep.Streamer) {
	q.mu.Lock()
	q.streamers = append(q.streamers, s)
	q.mu.Unlock()
}

// Clear drops every queued streamer.
func (q *queue) Clear() {
	q.mu.Lock()
	clear(q.streamers)
	q.streamers = q.streamers[:0]
	q.mu.Unlock()
}

// Len returns the number of queued streamers.
func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.streamers)
}
