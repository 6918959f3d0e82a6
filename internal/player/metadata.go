package player

import (
	"bytes"

	"github.com/dhowden/tag"
)

// TrackInfo is display metadata read from an audio payload.
type TrackInfo struct {
	Title  string
	Artist string
	Album  string
	Format string
}

// ReadTrackInfo extracts tag metadata from audio bytes.
// Returns nil if the payload carries no readable tags.
func ReadTrackInfo(data []byte) *TrackInfo {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	info := &TrackInfo{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Format: string(m.FileType()),
	}
	if info.Title == "" && info.Artist == "" {
		return nil
	}
	return info
}

// DisplayTitle returns "Artist - Title", the title alone, or fallback.
func (i *TrackInfo) DisplayTitle(fallback string) string {
	switch {
	case i == nil || i.Title == "":
		return fallback
	case i.Artist == "":
		return i.Title
	default:
		return i.Artist + " - " + i.Title
	}
}
