package chapters

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"
)

const id3Magic = "ID3"

// embedID3 rewrites the leading ID3v2 tag with one CHAP frame per chapter.
func embedID3(audio []byte, chapters []Chapter) ([]byte, error) {
	tagSize, err := id3TagSize(audio)
	if err != nil {
		return nil, err
	}

	tag, err := id3v2.ParseReader(bytes.NewReader(audio[:tagSize]), id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 and older cannot be rewritten; start from an empty tag.
		tag, err = id3v2.NewEmptyTag(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse tag: %w", err)
	}

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.DeleteFrames("CHAP")

	for i, c := range chapters {
		tag.AddChapterFrame(id3v2.ChapterFrame{
			ElementID:   "chp" + strconv.Itoa(i),
			StartTime:   c.Start,
			EndTime:     c.End,
			StartOffset: id3v2.IgnoredOffset,
			EndOffset:   id3v2.IgnoredOffset,
			Title: &id3v2.TextFrame{
				Encoding: id3v2.EncodingUTF8,
				Text:     c.Title,
			},
		})
	}

	var out bytes.Buffer
	if _, err := tag.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("write tag: %w", err)
	}
	out.Write(audio[tagSize:])
	return out.Bytes(), nil
}

// id3TagSize returns the length of the ID3v2 tag at the start of data,
// header and footer included, or 0 when there is none.
func id3TagSize(data []byte) (int, error) {
	if len(data) < 10 || string(data[:3]) != id3Magic {
		return 0, nil
	}

	// Synchsafe integer: each byte uses only 7 bits.
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	size += 10
	if data[5]&0x10 != 0 {
		size += 10
	}
	if size > len(data) {
		return 0, fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", size, len(data))
	}
	return size, nil
}
