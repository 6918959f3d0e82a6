// Package chapters writes breakpoints into an audio file's tags as chapter
// markers, so other players can navigate them.
package chapters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/bpplay/internal/breakpoint"
)

// ErrUnsupportedFormat is returned for containers without a chapter tag
// format we can write.
var ErrUnsupportedFormat = errors.New("chapters not supported for this format")

// Chapter is a titled span of the audio.
type Chapter struct {
	Start time.Duration
	End   time.Duration
	Title string
}

// FromBreakpoints turns sorted breakpoints into chapters. Each chapter runs
// to the next breakpoint, the last one to duration. When the first
// breakpoint is after 0 a leading chapter covers the gap.
func FromBreakpoints(bps []breakpoint.Breakpoint, duration time.Duration) []Chapter {
	if len(bps) == 0 {
		return nil
	}
	chapters := make([]Chapter, 0, len(bps)+1)
	if bps[0].Timepoint > 0 {
		chapters = append(chapters, Chapter{Start: 0, Title: "Start"})
	}
	for _, bp := range bps {
		title := bp.Hint
		if title == "" {
			title = breakpoint.FormatTimepoint(bp.Timepoint)
		}
		chapters = append(chapters, Chapter{Start: bp.Timepoint, Title: title})
	}
	for i := range chapters {
		if i+1 < len(chapters) {
			chapters[i].End = chapters[i+1].Start
		} else {
			chapters[i].End = max(duration, chapters[i].Start)
		}
	}
	return chapters
}

// Supported reports whether chapters can be written for the extension.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp3", ".flac":
		return true
	}
	return false
}

// Embed returns a copy of audio (a file with extension ext) carrying
// chapters. Existing chapter tags are replaced; other tags are kept.
func Embed(ext string, audio []byte, chapters []Chapter) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return embedID3(audio, chapters)
	case ".flac":
		return embedFLAC(audio, chapters)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// formatVorbisTime renders d as HH:MM:SS.mmm.
func formatVorbisTime(d time.Duration) string {
	d = max(d, 0)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
