package chapters

import (
	"bytes"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/bpplay/internal/breakpoint"
)

func TestFromBreakpoints(t *testing.T) {
	bps := []breakpoint.Breakpoint{
		breakpoint.New(10*time.Second, "intro"),
		breakpoint.New(75*time.Second, ""),
	}

	got := FromBreakpoints(bps, 2*time.Minute)

	want := []Chapter{
		{Start: 0, End: 10 * time.Second, Title: "Start"},
		{Start: 10 * time.Second, End: 75 * time.Second, Title: "intro"},
		{Start: 75 * time.Second, End: 2 * time.Minute, Title: "1:15"},
	}
	assert.Equal(t, want, got)
}

func TestFromBreakpoints_AtZero(t *testing.T) {
	bps := []breakpoint.Breakpoint{breakpoint.New(0, "top")}

	got := FromBreakpoints(bps, 0)

	require.Len(t, got, 1)
	assert.Equal(t, Chapter{Start: 0, End: 0, Title: "top"}, got[0])
}

func TestFromBreakpoints_Empty(t *testing.T) {
	assert.Nil(t, FromBreakpoints(nil, time.Minute))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(".mp3"))
	assert.True(t, Supported(".FLAC"))
	assert.False(t, Supported(".ogg"))
	assert.False(t, Supported(".m4a"))
}

func TestEmbed_Unsupported(t *testing.T) {
	_, err := Embed(".wav", []byte("RIFF"), nil)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatVorbisTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{75*time.Second + 250*time.Millisecond, "00:01:15.250"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03.000"},
		{-time.Second, "00:00:00.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVorbisTime(tt.in))
	}
}

var sampleChapters = []Chapter{
	{Start: 0, End: 30 * time.Second, Title: "Start"},
	{Start: 30 * time.Second, End: time.Minute, Title: "chorus"},
}

// mp3Frames stands in for MPEG audio after the tag.
var mp3Frames = []byte{0xFF, 0xFB, 0x90, 0x64, 0x00, 0x00, 0x00, 0x00}

func TestEmbedID3_NoExistingTag(t *testing.T) {
	out, err := Embed(".mp3", mp3Frames, sampleChapters)
	require.NoError(t, err)

	assert.Equal(t, id3Magic, string(out[:3]))
	size, err := id3TagSize(out)
	require.NoError(t, err)
	assert.Equal(t, mp3Frames, out[size:], "audio after the tag is unchanged")

	tag, err := id3v2.ParseReader(bytes.NewReader(out), id3v2.Options{Parse: true})
	require.NoError(t, err)
	frames := tag.GetFrames("CHAP")
	require.Len(t, frames, 2)
	second, ok := frames[1].(id3v2.ChapterFrame)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, second.StartTime)
	assert.Equal(t, time.Minute, second.EndTime)
	require.NotNil(t, second.Title)
	assert.Equal(t, "chorus", second.Title.Text)
}

func TestEmbedID3_KeepsTagsReplacesChapters(t *testing.T) {
	first, err := Embed(".mp3", mp3Frames, sampleChapters)
	require.NoError(t, err)

	tag, err := id3v2.ParseReader(bytes.NewReader(first), id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetTitle("Lecture")
	var tagged bytes.Buffer
	_, err = tag.WriteTo(&tagged)
	require.NoError(t, err)
	tagged.Write(mp3Frames)

	out, err := Embed(".mp3", tagged.Bytes(), sampleChapters[1:])
	require.NoError(t, err)

	tag, err = id3v2.ParseReader(bytes.NewReader(out), id3v2.Options{Parse: true})
	require.NoError(t, err)
	assert.Equal(t, "Lecture", tag.Title())
	assert.Len(t, tag.GetFrames("CHAP"), 1)
}

func TestID3TagSize(t *testing.T) {
	size, err := id3TagSize([]byte("not a tag at all"))
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0x01, 0x00}
	size, err = id3TagSize(append(header, make([]byte, 128)...))
	require.NoError(t, err)
	assert.Equal(t, 138, size)

	_, err = id3TagSize(header)
	require.Error(t, err, "tag claims more bytes than exist")
}

// minimalFLAC is a fLaC marker and a single empty STREAMINFO block.
func minimalFLAC() []byte {
	data := []byte("fLaC")
	data = append(data, 0x80, 0x00, 0x00, 0x22)
	return append(data, make([]byte, 34)...)
}

func flacComments(t *testing.T, data []byte) []string {
	t.Helper()
	f, err := flac.ParseBytes(bytes.NewReader(data))
	require.NoError(t, err)
	for _, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			require.NoError(t, err)
			return cmts.Comments
		}
	}
	t.Fatal("no comment block")
	return nil
}

func TestEmbedFLAC(t *testing.T) {
	out, err := Embed(".flac", minimalFLAC(), sampleChapters)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CHAPTER001=00:00:00.000",
		"CHAPTER001NAME=Start",
		"CHAPTER002=00:00:30.000",
		"CHAPTER002NAME=chorus",
	}, flacComments(t, out))
}

func TestEmbedFLAC_ReplacesChapters(t *testing.T) {
	first, err := Embed(".flac", minimalFLAC(), sampleChapters)
	require.NoError(t, err)

	f, err := flac.ParseBytes(bytes.NewReader(first))
	require.NoError(t, err)
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			require.NoError(t, err)
			require.NoError(t, cmts.Add("TITLE", "Lecture"))
			block := cmts.Marshal()
			f.Meta[i] = &block
		}
	}

	out, err := Embed(".flac", f.Marshal(), sampleChapters[1:])
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TITLE=Lecture",
		"CHAPTER001=00:00:30.000",
		"CHAPTER001NAME=chorus",
	}, flacComments(t, out))
}

func TestEmbedFLAC_NotFLAC(t *testing.T) {
	_, err := Embed(".flac", []byte("garbage data"), sampleChapters)
	require.Error(t, err)
}
