package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedExtension is returned for paths that are neither audio nor
// save files.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// SaveExtension is the extension of save files.
const SaveExtension = ".bax"

// FileCategory says how a path is opened.
type FileCategory int

const (
	CategoryAudio FileCategory = iota + 1
	CategorySaveFile
)

func (c FileCategory) String() string {
	switch c {
	case CategoryAudio:
		return "audio"
	case CategorySaveFile:
		return "save file"
	default:
		return "unknown"
	}
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
}

// AudioExtensions lists the extensions opened as audio.
func AudioExtensions() []string {
	return []string{".flac", ".m4a", ".mp3", ".ogg", ".opus", ".wav"}
}

// IsAudioExtension reports whether ext (with dot, any case) is playable.
func IsAudioExtension(ext string) bool {
	return audioExtensions[strings.ToLower(ext)]
}

// Categorize resolves the category of path from its extension.
func Categorize(path string) (FileCategory, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == SaveExtension:
		return CategorySaveFile, nil
	case audioExtensions[ext]:
		return CategoryAudio, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
	}
}

// WithSaveExtension appends the save extension unless path already has it.
func WithSaveExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), SaveExtension) {
		return path
	}
	return path + SaveExtension
}
