// Package logging writes diagnostics to a file under the XDG state
// directory. The terminal belongs to the TUI, so nothing is logged there.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const relPath = "bpplay/bpplay.log"

// Path returns the default log file path, creating its directory.
func Path() (string, error) {
	return xdg.StateFile(relPath)
}

// Open appends to the log file at path and returns a text logger writing
// records at level or above. The caller closes the returned file.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

// Setup opens the default log file and installs it as the slog default.
// When the file cannot be opened, logging is discarded.
func Setup(debug bool) io.Closer {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	path, err := Path()
	if err == nil {
		var logger *slog.Logger
		var closer io.Closer
		if logger, closer, err = Open(path, level); err == nil {
			slog.SetDefault(logger)
			return closer
		}
	}
	slog.SetDefault(slog.New(slog.DiscardHandler))
	return io.NopCloser(nil)
}
