package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

type codec int

const (
	codecMP3 codec = iota
	codecFLAC
	codecWAV
	codecVorbis
	codecOpus
	codecM4A
)

func (c codec) String() string {
	switch c {
	case codecMP3:
		return "MP3"
	case codecFLAC:
		return "FLAC"
	case codecWAV:
		return "WAV"
	case codecVorbis:
		return "OGG"
	case codecOpus:
		return "Opus"
	case codecM4A:
		return "M4A"
	default:
		return "unknown"
	}
}

// id3v2Size returns the size of an ID3v2 tag at the start of data, or 0.
// Some taggers prepend ID3v2 to FLAC files, which the FLAC decoder doesn't handle.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return 0
	}
	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	return min(10+size, len(data))
}

// sniff detects the codec from the leading bytes.
func sniff(data []byte) (codec, bool) {
	skip := id3v2Size(data)
	body := data[skip:]

	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return codecFLAC, true
	case skip > 0:
		// ID3v2 in front of anything else is an MP3
		return codecMP3, true
	case len(body) >= 12 && string(body[0:4]) == "RIFF" && string(body[8:12]) == "WAVE":
		return codecWAV, true
	case bytes.HasPrefix(body, []byte("OggS")):
		if isOggOpus(body) {
			return codecOpus, true
		}
		return codecVorbis, true
	case isM4A(body):
		return codecM4A, true
	case len(body) >= 2 && body[0] == 0xFF && body[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return codecMP3, true
	}
	return 0, false
}

// decodeBuffered decodes data entirely into memory.
// maxBuffered caps the decoded length; zero means no limit.
func decodeBuffered(data []byte, maxBuffered time.Duration) (*beep.Buffer, error) {
	c, ok := sniff(data)
	if !ok {
		return nil, decodeErr(Unrecognized, nil)
	}

	var (
		streamer beep.StreamCloser
		format   beep.Format
		err      error
	)
	switch c {
	case codecMP3:
		streamer, format, err = decodeMP3(io.NopCloser(bytes.NewReader(data)))
	case codecFLAC:
		streamer, format, err = flac.Decode(bytes.NewReader(data[id3v2Size(data):]))
	case codecWAV:
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	case codecVorbis:
		streamer, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	case codecOpus:
		streamer, format, err = decodeOggOpus(data)
	case codecM4A:
		streamer, format, err = decodeM4A(data)
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, decodeErr(Malformed, fmt.Errorf("%s: truncated: %w", c, err))
		}
		return nil, decodeErr(Malformed, fmt.Errorf("%s: %w", c, err))
	}
	defer streamer.Close()

	if format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, decodeErr(NoStreams, fmt.Errorf("%s: invalid format %+v", c, format))
	}

	buf := beep.NewBuffer(format)
	if maxBuffered > 0 {
		limit := format.SampleRate.N(maxBuffered)
		buf.Append(beep.Take(limit+1, streamer))
		if buf.Len() > limit {
			return nil, decodeErr(ResourceLimit, fmt.Errorf("longer than %v", maxBuffered))
		}
	} else {
		buf.Append(streamer)
	}

	if err := streamer.Err(); err != nil {
		return nil, decodeErr(Malformed, fmt.Errorf("%s: %w", c, err))
	}
	if buf.Len() == 0 {
		return nil, decodeErr(NoStreams, fmt.Errorf("%s: no samples", c))
	}
	return buf, nil
}

// bufferedSource is a window into a decoded buffer.
type bufferedSource struct {
	buf  *beep.Buffer
	from int
}

func (s *bufferedSource) Duration() time.Duration {
	return s.buf.Format().SampleRate.D(s.buf.Len() - s.from)
}

func (s *bufferedSource) From(offset time.Duration) Source {
	n := s.from + s.buf.Format().SampleRate.N(max(offset, 0))
	return &bufferedSource{buf: s.buf, from: min(n, s.buf.Len())}
}

func (s *bufferedSource) streamer() beep.Streamer {
	return s.buf.Streamer(s.from, s.buf.Len())
}
