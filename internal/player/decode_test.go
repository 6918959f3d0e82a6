package player

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wavBytes builds a 16-bit PCM stereo WAV file holding frames of silence.
func wavBytes(rate, frames int) []byte {
	const channels, bits = 2, 16
	blockAlign := channels * bits / 8
	dataSize := frames * blockAlign

	b := make([]byte, 0, 44+dataSize)
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(36+dataSize))
	b = append(b, "WAVE"...)
	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, 1) // PCM
	b = binary.LittleEndian.AppendUint16(b, channels)
	b = binary.LittleEndian.AppendUint32(b, uint32(rate))
	b = binary.LittleEndian.AppendUint32(b, uint32(rate*blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(blockAlign))
	b = binary.LittleEndian.AppendUint16(b, bits)
	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(dataSize))
	return append(b, make([]byte, dataSize)...)
}

func TestSniff(t *testing.T) {
	id3 := append([]byte("ID3\x04\x00\x00\x00\x00\x00\x02"), 0, 0)

	tests := []struct {
		name  string
		data  []byte
		want  codec
		found bool
	}{
		{"flac", []byte("fLaC\x00\x00"), codecFLAC, true},
		{"flac behind id3", append(append([]byte{}, id3...), "fLaC"...), codecFLAC, true},
		{"mp3 behind id3", append(append([]byte{}, id3...), 0xFF, 0xFB), codecMP3, true},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, codecMP3, true},
		{"wav", wavBytes(8000, 1), codecWAV, true},
		{"ogg vorbis", oggPage(1, false, append([]byte{1}, "vorbis"...)), codecVorbis, true},
		{"ogg opus", oggPage(1, false, opusHeadPacket(1, 2, 0)), codecOpus, true},
		{"m4a", []byte("\x00\x00\x00\x20ftypM4A \x00\x00\x00\x00"), codecM4A, true},
		{"text", []byte("hello world"), 0, false},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sniff(tt.data)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeBuffered_WAV(t *testing.T) {
	buf, err := decodeBuffered(wavBytes(8000, 16000), 0)
	require.NoError(t, err)

	src := &bufferedSource{buf: buf}
	assert.Equal(t, 2*time.Second, src.Duration())

	sub := src.From(500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, sub.Duration())

	past := src.From(time.Minute)
	assert.Equal(t, time.Duration(0), past.Duration())

	// From on a sub-source is relative to it.
	assert.Equal(t, time.Second, sub.From(500*time.Millisecond).Duration())
}

func TestDecodeBuffered_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		maxBuffered time.Duration
		want        ErrorKind
	}{
		{"unrecognized", []byte("plain text, no audio"), 0, Unrecognized},
		{"malformed wav", []byte("RIFF\x10\x00\x00\x00WAVEjunk"), 0, Malformed},
		{"too long", wavBytes(8000, 8000), 100 * time.Millisecond, ResourceLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBuffered(tt.data, tt.maxBuffered)
			require.Error(t, err)

			kind, ok := KindOf(err)
			require.True(t, ok, "expected *DecodeError, got %T", err)
			assert.Equal(t, tt.want, kind)
			assert.True(t, errors.Is(err, &DecodeError{Kind: tt.want}))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestSpeaker_DecodeIOError(t *testing.T) {
	s := NewSpeaker(SpeakerOptions{})

	_, err := s.Decode(failingReader{})

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, IO, kind)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestSpeaker_InitialState(t *testing.T) {
	s := NewSpeaker(SpeakerOptions{})

	assert.True(t, s.IsPaused())
	assert.True(t, s.IsEmpty())

	// Controls before the output is opened only record settings.
	s.Play()
	s.SetVolume(2)
	s.SetSpeed(1.5)
	assert.False(t, s.IsPaused())
	assert.Equal(t, 1.0, s.level)
	assert.Equal(t, 1.5, s.speed)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "malformed stream", Malformed.String())
	assert.Equal(t, "no audio streams", NoStreams.String())
	assert.Equal(t, "unknown error", ErrorKind(99).String())
}

func TestLevelToVolume(t *testing.T) {
	assert.Equal(t, -10.0, levelToVolume(0))
	assert.Equal(t, 0.0, levelToVolume(1))
	assert.InDelta(t, -1.0, levelToVolume(0.5), 1e-9)
}
