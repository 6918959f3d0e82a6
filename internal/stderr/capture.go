// Package stderr captures output that C audio libraries (ALSA, PulseAudio)
// write directly to file descriptor 2, bypassing os.Stderr, so it does not
// corrupt the TUI layout.
package stderr

import (
	"bufio"
	"io"
	"strings"
)

const defaultBuffer = 100

// Capture redirects fd 2 while active. Captured lines are delivered on
// Lines until Stop.
type Capture struct {
	lines chan string
	done  chan struct{}
	plat  platform
}

// Lines receives captured lines, trimmed and non-empty. The channel is
// closed after Stop once every pending line was read from the pipe.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must stay visible after the TUI exits.
func (c *Capture) WriteOriginal(msg string) {
	c.plat.writeOriginal(msg)
}

// Stop restores the original stderr and waits for the reader to finish.
func (c *Capture) Stop() {
	if c.plat.restore() {
		<-c.done
	}
}

// pump forwards lines from r to c.lines, dropping lines when the buffer is
// full so the writing library never blocks.
func (c *Capture) pump(r io.Reader) {
	defer close(c.done)
	defer close(c.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
		}
	}
}

func newCapture(buffer int) *Capture {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Capture{
		lines: make(chan string, buffer),
		done:  make(chan struct{}),
	}
}
