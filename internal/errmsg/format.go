// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/chapters"
	"github.com/llehouerou/bpplay/internal/history"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/player"
	"github.com/llehouerou/bpplay/internal/session"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// File operations
	OpFileOpen       Op = "open file"
	OpFileSave       Op = "save file"
	OpChaptersExport Op = "export chapters"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPlay  Op = "play audio"
	OpPlaybackSeek  Op = "seek"
	OpPlaybackSpeed Op = "change speed"

	// Breakpoint operations
	OpBreakpointAdd    Op = "add breakpoint"
	OpBreakpointRemove Op = "remove breakpoint"
	OpBreakpointClear  Op = "clear breakpoints"
	OpBreakpointJump   Op = "jump to breakpoint"
	OpUndo             Op = "undo"
	OpRedo             Op = "redo"

	// State
	OpStateLoad Op = "load saved state"
	OpStateSave Op = "save state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, Reason(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, Reason(err))
}

// Reason describes err in user terms. Errors with no known description
// are returned as-is.
func Reason(err error) string {
	var decodeErr *player.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		return decodeReason(decodeErr.Kind)
	case errors.Is(err, breakpoint.ErrCorruptSaveFile):
		return "the save file is corrupt"
	case errors.Is(err, chapters.ErrUnsupportedFormat):
		return "only MP3 and FLAC files take chapters"
	case errors.Is(err, session.ErrNoBreakpoint):
		return "no breakpoint there"
	case errors.Is(err, playback.ErrNothingLoaded):
		return "no file is open"
	case errors.Is(err, history.ErrNothingToUndo):
		return "nothing to undo"
	case errors.Is(err, history.ErrNothingToRedo):
		return "nothing to redo"
	}
	return err.Error()
}

func decodeReason(kind player.ErrorKind) string {
	switch kind {
	case player.Unrecognized:
		return "unrecognized audio format"
	case player.IO:
		return "could not read the audio data"
	case player.Malformed:
		return "the audio data is malformed"
	case player.ResourceLimit:
		return "the audio is too long to load"
	case player.ResetRequired:
		return "the audio sample rate differs from the output"
	case player.NoStreams:
		return "the file contains no audio"
	default:
		return "could not decode audio"
	}
}
