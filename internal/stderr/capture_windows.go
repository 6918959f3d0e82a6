//go:build windows

package stderr

import "os"

// Windows audio output does not write to stderr; capture is a no-op.
type platform struct{}

// Start returns a capture whose Lines channel is already closed.
func Start(buffer int) (*Capture, error) {
	c := newCapture(buffer)
	close(c.lines)
	close(c.done)
	return c, nil
}

func (platform) writeOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func (platform) restore() bool { return false }
