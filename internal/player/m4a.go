package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the default ALAC frames per packet.
const alacFrameSize = 4096

var errUnsupportedM4ACodec = errors.New("m4a: unsupported codec")

// memFile adapts an in-memory payload to the seekable file the container
// reader expects.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// m4aStreamer decodes the samples of an MP4 container one at a time with
// the AAC or ALAC decoder.
type m4aStreamer struct {
	container *m4a.Reader
	next      int
	decode    func([]byte) ([][2]float64, error)
	release   func()

	frames [][2]float64
	err    error
}

// isM4A reports whether data starts with an MP4 ftyp box.
func isM4A(data []byte) bool {
	return len(data) >= 12 && string(data[4:8]) == "ftyp"
}

// decodeM4A prepares a streamer for an AAC or ALAC payload in an MP4
// container.
func decodeM4A(data []byte) (*m4aStreamer, beep.Format, error) {
	container, err := m4a.Open(memFile{bytes.NewReader(data)})
	if err != nil {
		return nil, beep.Format{}, err
	}

	channels := int(container.Channels())
	rate := int(container.SampleRate())
	if channels < 1 || rate <= 0 {
		return nil, beep.Format{}, fmt.Errorf("m4a: %d channels at %d Hz", channels, rate)
	}
	s := &m4aStreamer{container: container, release: func() {}}
	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}

	switch container.Codec() {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, err
		}
		s.decode = func(sample []byte) ([][2]float64, error) {
			pcm, err := dec.Decode(ctx, sample)
			if err != nil {
				return nil, err
			}
			return int16ToStereo(pcm, channels), nil
		}
		s.release = func() { dec.Close(ctx) }

	case m4a.CodecALAC:
		bits := int(container.SampleSize())
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  rate,
			SampleSize:  bits,
			NumChannels: channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		if bits == 24 {
			format.Precision = 3
		}
		s.decode = func(sample []byte) ([][2]float64, error) {
			return pcmBytesToStereo(dec.Decode(sample), bits/8, channels), nil
		}

	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", errUnsupportedM4ACodec, container.Codec())
	}
	return s, format, nil
}

// Stream implements beep.Streamer.
func (s *m4aStreamer) Stream(samples [][2]float64) (n int, ok bool) {
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

func (s *m4aStreamer) refill() bool {
	for len(s.frames) == 0 {
		if s.err != nil || s.next >= s.container.SampleCount() {
			return false
		}
		sample, err := s.container.ReadSample(s.next)
		if err != nil {
			s.err = err
			return false
		}
		s.next++
		if s.frames, err = s.decode(sample); err != nil {
			s.err = err
			return false
		}
	}
	return true
}

// Err implements beep.Streamer.
func (s *m4aStreamer) Err() error { return s.err }

// Close releases the native decoder.
func (s *m4aStreamer) Close() error {
	s.release()
	return nil
}

// int16ToStereo converts interleaved 16-bit samples to stereo frames.
func int16ToStereo(pcm []int16, channels int) [][2]float64 {
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// pcmBytesToStereo converts interleaved little-endian signed PCM of width
// bytes per sample (2 or 3) to stereo frames.
func pcmBytesToStereo(data []byte, width, channels int) [][2]float64 {
	if width != 2 && width != 3 {
		return nil
	}
	scale := float64(int64(1) << (8*width - 1))
	sample := func(off int) float64 {
		v := int32(data[off]) | int32(data[off+1])<<8
		if width == 3 {
			v |= int32(data[off+2]) << 16
		}
		shift := 32 - 8*width
		return float64(v<<shift>>shift) / scale
	}

	stride := width * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		l := sample(off)
		r := l
		if channels > 1 {
			r = sample(off + width)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}
