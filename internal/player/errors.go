package player

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	// Unrecognized means no decoder understands the content.
	Unrecognized ErrorKind = iota
	// IO means the byte stream could not be read.
	IO
	// Malformed means the content looks like a known format but is broken.
	Malformed
	// ResourceLimit means the decoded audio exceeds the buffering limit.
	ResourceLimit
	// ResetRequired means the output must be reopened to play this source.
	ResetRequired
	// NoStreams means the content holds no playable audio.
	NoStreams
)

// String returns a human readable kind.
func (k ErrorKind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized format"
	case IO:
		return "i/o error"
	case Malformed:
		return "malformed stream"
	case ResourceLimit:
		return "resource limit exceeded"
	case ResetRequired:
		return "output reset required"
	case NoStreams:
		return "no audio streams"
	default:
		return "unknown error"
	}
}

// DecodeError reports why audio could not be decoded.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode: " + e.Kind.String()
	}
	return fmt.Sprintf("decode: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches another *DecodeError of the same kind, so callers can write
// errors.Is(err, &DecodeError{Kind: Malformed}).
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Err == nil && t.Kind == e.Kind
}

func decodeErr(kind ErrorKind, err error) *DecodeError {
	return &DecodeError{Kind: kind, Err: err}
}

// KindOf returns the kind of a decode error and whether err is one.
func KindOf(err error) (ErrorKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
