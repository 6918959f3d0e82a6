// Package archive reads and writes save files: a zip container holding the
// audio payload next to its breakpoints.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/llehouerou/bpplay/internal/breakpoint"
)

const (
	audioPrefix     = "audio"
	breakpointsName = "breakpoints.json"
)

// Bundle is the content of a save file.
type Bundle struct {
	// AudioExt is the payload extension including the dot, e.g. ".mp3".
	AudioExt    string
	Audio       []byte
	Breakpoints *breakpoint.Collection
	// Modified is stored on the entries; zero means now.
	Modified time.Time
}

// Write encodes b as a zip container.
func Write(w io.Writer, b Bundle) error {
	coll := b.Breakpoints
	if coll == nil {
		coll = breakpoint.NewCollection()
	}
	data, err := breakpoint.Marshal(coll)
	if err != nil {
		return fmt.Errorf("encode breakpoints: %w", err)
	}

	modified := b.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	zw := zip.NewWriter(w)
	// Audio is already compressed; store it as-is.
	if err := writeEntry(zw, audioPrefix+strings.ToLower(b.AudioExt), zip.Store, modified, b.Audio); err != nil {
		return err
	}
	if err := writeEntry(zw, breakpointsName, zip.Deflate, modified, data); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, method uint16, modified time.Time, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Read decodes a zip container of the given size.
// Any structural problem is reported as breakpoint.ErrCorruptSaveFile.
func Read(r io.ReaderAt, size int64) (Bundle, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Bundle{}, corrupt(err)
	}

	var (
		audio *zip.File
		bps   *zip.File
	)
	for _, f := range zr.File {
		switch {
		case f.Name == breakpointsName:
			bps = f
		case audio == nil && strings.HasPrefix(f.Name, audioPrefix) && !strings.Contains(f.Name, "/"):
			audio = f
		}
	}
	if audio == nil {
		return Bundle{}, corrupt(fmt.Errorf("missing audio entry"))
	}
	if bps == nil {
		return Bundle{}, corrupt(fmt.Errorf("missing %s", breakpointsName))
	}

	audioData, err := readEntry(audio)
	if err != nil {
		return Bundle{}, err
	}
	bpData, err := readEntry(bps)
	if err != nil {
		return Bundle{}, err
	}
	coll, err := breakpoint.Unmarshal(bpData)
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{
		AudioExt:    path.Ext(audio.Name),
		Audio:       audioData,
		Breakpoints: coll,
		Modified:    audio.Modified,
	}, nil
}

// ReadBytes decodes a container held in memory.
func ReadBytes(data []byte) (Bundle, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, corrupt(fmt.Errorf("open %s: %w", f.Name, err))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, corrupt(fmt.Errorf("read %s: %w", f.Name, err))
	}
	return data, nil
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %w", breakpoint.ErrCorruptSaveFile, err)
}
