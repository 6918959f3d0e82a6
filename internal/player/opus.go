package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/jj11hh/opus"
)

// Opus always decodes at 48 kHz.
const opusSampleRate = 48000

// opusMaxFrame is the longest Opus frame (120 ms) in samples per channel.
const opusMaxFrame = opusSampleRate * 120 / 1000

var (
	errInvalidOpusHead = errors.New("opus: invalid OpusHead packet")
	errUnsupportedOpus = errors.New("opus: unsupported version")
)

// opusHead is the identification header of an Ogg Opus stream.
type opusHead struct {
	channels int
	preSkip  int
}

func parseOpusHead(packet []byte) (opusHead, error) {
	if len(packet) < 19 || string(packet[:8]) != "OpusHead" {
		return opusHead{}, errInvalidOpusHead
	}
	if packet[8] != 1 {
		return opusHead{}, errUnsupportedOpus
	}
	h := opusHead{
		channels: int(packet[9]),
		preSkip:  int(binary.LittleEndian.Uint16(packet[10:12])),
	}
	if h.channels < 1 || h.channels > 2 {
		return opusHead{}, fmt.Errorf("opus: %d channels: %w", h.channels, errInvalidOpusHead)
	}
	return h, nil
}

// isOggOpus reports whether the first packet of an Ogg payload is an
// OpusHead.
func isOggOpus(data []byte) bool {
	pkt, err := newOggPackets(data).next()
	return err == nil && len(pkt) >= 8 && string(pkt[:8]) == "OpusHead"
}

// opusStreamer decodes Ogg Opus packets on demand.
type opusStreamer struct {
	packets  *oggPackets
	decoder  *opus.Decoder
	channels int
	skip     int // pre-skip samples still to drop

	pcm    []float32
	frames [][2]float64
	err    error
}

// decodeOggOpus prepares a streamer for an Ogg Opus payload.
func decodeOggOpus(data []byte) (*opusStreamer, beep.Format, error) {
	packets := newOggPackets(data)
	first, err := packets.next()
	if err != nil {
		return nil, beep.Format{}, err
	}
	head, err := parseOpusHead(first)
	if err != nil {
		return nil, beep.Format{}, err
	}
	// The second header packet holds tags.
	if _, err := packets.next(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("opus: missing OpusTags: %w", err)
	}

	decoder, err := opus.NewDecoder(opusSampleRate, head.channels)
	if err != nil {
		return nil, beep.Format{}, err
	}

	s := &opusStreamer{
		packets:  packets,
		decoder:  decoder,
		channels: head.channels,
		skip:     head.preSkip,
		pcm:      make([]float32, opusMaxFrame*head.channels),
	}
	format := beep.Format{SampleRate: opusSampleRate, NumChannels: 2, Precision: 2}
	return s, format, nil
}

// Stream implements beep.Streamer.
func (s *opusStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if len(s.frames) == 0 && !s.refill() {
			return n, n > 0
		}
		c := copy(samples[n:], s.frames)
		s.frames = s.frames[c:]
		n += c
	}
	return n, true
}

// refill decodes the next packet into frames. Returns false at the end of
// the stream or on error.
func (s *opusStreamer) refill() bool {
	for len(s.frames) == 0 {
		pkt, err := s.packets.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return false
		}
		if len(pkt) == 0 {
			continue
		}
		count, err := s.decoder.DecodeFloat32(pkt, s.pcm)
		if err != nil {
			s.err = err
			return false
		}
		frames := interleavedToStereo(s.pcm[:count*s.channels], s.channels)
		drop := min(s.skip, len(frames))
		s.skip -= drop
		s.frames = frames[drop:]
	}
	return true
}

// Err implements beep.Streamer.
func (s *opusStreamer) Err() error { return s.err }

// Close implements beep.StreamCloser.
func (s *opusStreamer) Close() error { return nil }

// interleavedToStereo converts interleaved float samples to stereo frames.
// Mono is duplicated on both sides.
func interleavedToStereo(pcm []float32, channels int) [][2]float64 {
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels])
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1])
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}
