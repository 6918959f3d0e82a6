package player

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opusHeadPacket(version, channels byte, preSkip uint16) []byte {
	p := append([]byte("OpusHead"), version, channels)
	p = binary.LittleEndian.AppendUint16(p, preSkip)
	p = binary.LittleEndian.AppendUint32(p, 44100)
	return append(p, 0, 0, 0) // gain, mapping family
}

func TestParseOpusHead(t *testing.T) {
	h, err := parseOpusHead(opusHeadPacket(1, 2, 312))
	require.NoError(t, err)
	assert.Equal(t, 2, h.channels)
	assert.Equal(t, 312, h.preSkip)

	_, err = parseOpusHead(opusHeadPacket(2, 2, 0))
	require.ErrorIs(t, err, errUnsupportedOpus)

	_, err = parseOpusHead(opusHeadPacket(1, 6, 0))
	require.ErrorIs(t, err, errInvalidOpusHead)

	_, err = parseOpusHead([]byte("OpusHead"))
	require.ErrorIs(t, err, errInvalidOpusHead)

	_, err = parseOpusHead(append([]byte("OpusTags"), make([]byte, 11)...))
	require.ErrorIs(t, err, errInvalidOpusHead)
}

func TestIsOggOpus(t *testing.T) {
	assert.True(t, isOggOpus(oggPage(1, false, opusHeadPacket(1, 2, 0))))
	assert.False(t, isOggOpus(oggPage(1, false, append([]byte{1}, "vorbis"...))))
	assert.False(t, isOggOpus([]byte("OggS")))
}

func TestDecodeOggOpus_MissingTags(t *testing.T) {
	_, _, err := decodeOggOpus(oggPage(1, false, opusHeadPacket(1, 2, 0)))
	require.Error(t, err)
}

func TestInterleavedToStereo(t *testing.T) {
	stereo := interleavedToStereo([]float32{0.5, -0.5, 0.25, -0.25}, 2)
	assert.Equal(t, [][2]float64{{0.5, -0.5}, {0.25, -0.25}}, stereo)

	mono := interleavedToStereo([]float32{0.5, 0.25}, 1)
	assert.Equal(t, [][2]float64{{0.5, 0.5}, {0.25, 0.25}}, mono)
}
