//go:build !windows

package stderr

import (
	"os"
	"syscall"
)

type platform struct {
	orig      int
	pipeWrite *os.File
	active    bool
}

// Start begins capturing stderr. It must be called before the audio output
// is initialized. On error the program can continue without capture.
func Start(buffer int) (*Capture, error) {
	c := newCapture(buffer)

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	// Save original stderr file descriptor
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c.plat = platform{orig: orig, pipeWrite: w, active: true}
	go func() {
		c.pump(r)
		r.Close()
	}()
	return c, nil
}

func (p *platform) writeOriginal(msg string) {
	if p.active {
		_, _ = syscall.Write(p.orig, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// restore puts the original fd 2 back. Returns false if nothing was captured.
func (p *platform) restore() bool {
	if !p.active {
		return false
	}
	p.active = false

	_ = syscall.Dup2(p.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(p.orig)

	// fd 2 no longer references the pipe; closing our end lets the reader
	// see EOF.
	p.pipeWrite.Close()
	return true
}
