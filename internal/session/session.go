// Package session ties a loaded audio payload to its breakpoints and edit
// history.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/bpplay/internal/archive"
	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/chapters"
	"github.com/llehouerou/bpplay/internal/history"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/player"
)

// ErrNoBreakpoint is returned when an operation needs a breakpoint that does
// not exist.
var ErrNoBreakpoint = errors.New("no breakpoint")

// Options configures a Session.
type Options struct {
	HistoryCapacity int
	HintLimit       int
}

// Session is the open document: audio, breakpoints and undo history.
// Breakpoints are only mutated through the history log.
type Session struct {
	ctrl        *playback.Controller
	breakpoints *breakpoint.Collection
	log         *history.Log
	hintLimit   int

	path     string
	savePath string
	audio    []byte
	audioExt string
	info     *player.TrackInfo
	savedRev uint64 // history revision last written or opened
}

// New creates an empty session driving ctrl.
func New(ctrl *playback.Controller, opts Options) *Session {
	if opts.HintLimit <= 0 {
		opts.HintLimit = breakpoint.DefaultHintLimit
	}
	return &Session{
		ctrl:        ctrl,
		breakpoints: breakpoint.NewCollection(),
		log:         history.New(opts.HistoryCapacity),
		hintLimit:   opts.HintLimit,
	}
}

// Open loads an audio file or a save file. On failure the session is left
// unchanged.
func (s *Session) Open(path string) error {
	category, err := Categorize(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.open(path, category, data)
}

// OpenReader loads content read from r as if it came from a file called name.
func (s *Session) OpenReader(name string, r io.Reader) error {
	category, err := Categorize(name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.open(name, category, data)
}

func (s *Session) open(path string, category FileCategory, data []byte) error {
	audio := data
	ext := strings.ToLower(filepath.Ext(path))
	coll := breakpoint.NewCollection()
	savePath := ""

	if category == CategorySaveFile {
		bundle, err := archive.ReadBytes(data)
		if err != nil {
			return err
		}
		if !IsAudioExtension(bundle.AudioExt) {
			return fmt.Errorf("%w: audio entry has extension %q", breakpoint.ErrCorruptSaveFile, bundle.AudioExt)
		}
		audio = bundle.Audio
		ext = strings.ToLower(bundle.AudioExt)
		coll = bundle.Breakpoints
		savePath = path
	}

	if err := s.ctrl.Load(bytes.NewReader(audio)); err != nil {
		return err
	}

	s.path = path
	s.savePath = savePath
	s.audio = audio
	s.audioExt = ext
	s.info = player.ReadTrackInfo(audio)
	s.breakpoints = coll
	s.log.Reset()
	s.markSaved()
	return nil
}

// Save writes the session to path, appending the save extension if needed.
// Returns the path written.
func (s *Session) Save(path string) (string, error) {
	if !s.Loaded() {
		return "", playback.ErrNothingLoaded
	}
	path = WithSaveExtension(path)
	if err := writeFileAtomic(path, s.write); err != nil {
		return "", err
	}

	s.savePath = path
	s.markSaved()
	return path, nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".bpplay-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after rename

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ExportChapters writes a copy of the audio to path with the breakpoints
// as chapter tags. The session itself is not modified.
func (s *Session) ExportChapters(path string) error {
	if !s.Loaded() {
		return playback.ErrNothingLoaded
	}
	if s.breakpoints.Len() == 0 {
		return ErrNoBreakpoint
	}
	marks := chapters.FromBreakpoints(s.breakpoints.All(), s.ctrl.Duration())
	data, err := chapters.Embed(s.audioExt, s.audio, marks)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CanExportChapters reports whether the open audio format takes chapter
// tags.
func (s *Session) CanExportChapters() bool {
	return s.Loaded() && chapters.Supported(s.audioExt)
}

// DefaultChapterPath proposes where ExportChapters writes: next to the
// audio, named "<name>.chapters<ext>".
func (s *Session) DefaultChapterPath() string {
	base := s.savePath
	if base == "" {
		base = s.path
	}
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".chapters" + s.audioExt
}

// SaveTo writes the session to w.
func (s *Session) SaveTo(w io.Writer) error {
	if !s.Loaded() {
		return playback.ErrNothingLoaded
	}
	if err := s.write(w); err != nil {
		return err
	}
	s.markSaved()
	return nil
}

func (s *Session) write(w io.Writer) error {
	return archive.Write(w, archive.Bundle{
		AudioExt:    s.audioExt,
		Audio:       s.audio,
		Breakpoints: s.breakpoints,
		Modified:    time.Now(),
	})
}

// DefaultSavePath returns where Save should write when the user gives no
// path: the save file it was opened from, or the audio path with the save
// extension.
func (s *Session) DefaultSavePath() string {
	if s.savePath != "" {
		return s.savePath
	}
	if s.path == "" {
		return ""
	}
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + SaveExtension
}

// Close unloads the audio and forgets breakpoints and history.
func (s *Session) Close() {
	s.ctrl.Unload()
	s.path = ""
	s.savePath = ""
	s.audio = nil
	s.audioExt = ""
	s.info = nil
	s.breakpoints = breakpoint.NewCollection()
	s.log.Reset()
	s.markSaved()
}

// AddBreakpoint inserts a breakpoint at the current position, truncated to
// the millisecond.
func (s *Session) AddBreakpoint(hint string) (breakpoint.Breakpoint, error) {
	if !s.Loaded() {
		return breakpoint.Breakpoint{}, playback.ErrNothingLoaded
	}
	return s.AddBreakpointAt(s.ctrl.Position().Truncate(time.Millisecond), hint)
}

// AddBreakpointAt inserts a breakpoint at d.
func (s *Session) AddBreakpointAt(d time.Duration, hint string) (breakpoint.Breakpoint, error) {
	if !s.Loaded() {
		return breakpoint.Breakpoint{}, playback.ErrNothingLoaded
	}
	bp := breakpoint.New(d, breakpoint.TrimHint(hint, s.hintLimit))
	s.apply(history.Add(bp))
	return bp, nil
}

// RemoveBreakpoint removes one breakpoint equal to bp.
func (s *Session) RemoveBreakpoint(bp breakpoint.Breakpoint) error {
	if !s.apply(history.Remove(bp)) {
		return fmt.Errorf("%w: %s", ErrNoBreakpoint, bp)
	}
	return nil
}

// RemoveNearest removes the breakpoint nearest to the current position.
func (s *Session) RemoveNearest() (breakpoint.Breakpoint, error) {
	bp := s.Nearest()
	if bp == nil {
		return breakpoint.Breakpoint{}, ErrNoBreakpoint
	}
	return *bp, s.RemoveBreakpoint(*bp)
}

// ClearBreakpoints removes every breakpoint as one undoable step.
func (s *Session) ClearBreakpoints() error {
	if !s.apply(history.ClearAll(nil)) {
		return ErrNoBreakpoint
	}
	return nil
}

func (s *Session) apply(a history.Action) bool {
	return s.log.Apply(s.breakpoints, a)
}

// Undo reverts the last edit.
func (s *Session) Undo() error {
	return s.log.Undo(s.breakpoints)
}

// Redo re-applies the last undone edit.
func (s *Session) Redo() error {
	return s.log.Redo(s.breakpoints)
}

// CanUndo reports whether there is an edit to revert.
func (s *Session) CanUndo() bool { return s.log.CanUndo() }

// CanRedo reports whether there is an undone edit to re-apply.
func (s *Session) CanRedo() bool { return s.log.CanRedo() }

// Neighbors returns the breakpoints around the current position.
func (s *Session) Neighbors() (prev, next *breakpoint.Breakpoint) {
	return s.breakpoints.Neighbors(s.ctrl.Position())
}

// Nearest returns the breakpoint closest to the current position.
func (s *Session) Nearest() *breakpoint.Breakpoint {
	return s.breakpoints.NearestTo(s.ctrl.Position())
}

// JumpPrevious seeks to the last breakpoint before the current position.
func (s *Session) JumpPrevious() (breakpoint.Breakpoint, error) {
	prev, _ := s.Neighbors()
	if prev == nil {
		return breakpoint.Breakpoint{}, ErrNoBreakpoint
	}
	s.ctrl.Seek(prev.Timepoint)
	return *prev, nil
}

// JumpNext seeks to the first breakpoint after the current position.
func (s *Session) JumpNext() (breakpoint.Breakpoint, error) {
	_, next := s.breakpoints.Neighbors(s.ctrl.Position() + 1)
	if next == nil {
		return breakpoint.Breakpoint{}, ErrNoBreakpoint
	}
	s.ctrl.Seek(next.Timepoint)
	return *next, nil
}

// Loaded reports whether audio is loaded.
func (s *Session) Loaded() bool { return s.ctrl.State().IsLoaded() && s.audio != nil }

// Dirty reports unsaved edits since the last open or save.
func (s *Session) Dirty() bool { return s.log.Revision() != s.savedRev }

func (s *Session) markSaved() { s.savedRev = s.log.Revision() }

// Breakpoints returns the breakpoints in order.
func (s *Session) Breakpoints() []breakpoint.Breakpoint { return s.breakpoints.All() }

// Controller returns the playback controller.
func (s *Session) Controller() *playback.Controller { return s.ctrl }

// Path returns the opened file path, empty when nothing is open.
func (s *Session) Path() string { return s.path }

// AudioSize returns the size of the audio payload in bytes.
func (s *Session) AudioSize() int { return len(s.audio) }

// TrackInfo returns tag metadata, nil when the payload has none.
func (s *Session) TrackInfo() *player.TrackInfo { return s.info }

// Title returns the display title of the open file.
func (s *Session) Title() string {
	if s.path == "" {
		return ""
	}
	return s.info.DisplayTitle(filepath.Base(s.path))
}
