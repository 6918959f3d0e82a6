package chapters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// embedFLAC writes chapters as CHAPTERnnn / CHAPTERnnnNAME Vorbis comments.
func embedFLAC(audio []byte, chapters []Chapter) ([]byte, error) {
	f, err := flac.ParseBytes(bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmtIdx = i
			break
		}
	}

	cmts := flacvorbis.New()
	if cmtIdx >= 0 {
		existing, err := flacvorbis.ParseFromMetaDataBlock(*f.Meta[cmtIdx])
		if err != nil {
			return nil, fmt.Errorf("parse comments: %w", err)
		}
		cmts.Vendor = existing.Vendor
		for _, c := range existing.Comments {
			if !isChapterComment(c) {
				cmts.Comments = append(cmts.Comments, c)
			}
		}
	}

	for i, c := range chapters {
		key := fmt.Sprintf("CHAPTER%03d", i+1)
		if err := cmts.Add(key, formatVorbisTime(c.Start)); err != nil {
			return nil, fmt.Errorf("add %s: %w", key, err)
		}
		if err := cmts.Add(key+"NAME", c.Title); err != nil {
			return nil, fmt.Errorf("add %sNAME: %w", key, err)
		}
	}

	cmtBlock := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}
	return f.Marshal(), nil
}

func isChapterComment(c string) bool {
	key, _, _ := strings.Cut(c, "=")
	return strings.HasPrefix(strings.ToUpper(key), "CHAPTER")
}
