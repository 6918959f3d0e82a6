// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "breakpoints", "list"
}

// Bindings contains all key bindings, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionOpen, []string{"o"}, "Open file", "global"},
	{ActionSave, []string{"ctrl+s"}, "Save", "global"},
	{ActionSaveAs, []string{"S"}, "Save as", "global"},
	{ActionExportChapters, []string{"E"}, "Export with chapters", "global"},
	{ActionClose, []string{"ctrl+w"}, "Close file", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionReset, []string{"r", "home"}, "Back to start", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek backward", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionSpeedUp, []string{"]"}, "Faster", "playback"},
	{ActionSpeedDown, []string{"["}, "Slower", "playback"},

	// Breakpoints
	{ActionPrevBreakpoint, []string{"p", "shift+left"}, "Previous breakpoint", "breakpoints"},
	{ActionNextBreakpoint, []string{"n", "shift+right"}, "Next breakpoint", "breakpoints"},
	{ActionAddBreakpoint, []string{"b"}, "Add breakpoint", "breakpoints"},
	{ActionAddWithHint, []string{"B"}, "Add breakpoint with hint", "breakpoints"},
	{ActionRemoveNearest, []string{"x"}, "Remove nearest breakpoint", "breakpoints"},
	{ActionClearBreakpoints, []string{"C"}, "Clear all breakpoints", "breakpoints"},
	{ActionUndo, []string{"u", "ctrl+z"}, "Undo", "breakpoints"},
	{ActionRedo, []string{"U", "ctrl+r"}, "Redo", "breakpoints"},

	// Breakpoint list
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g"}, "First breakpoint", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last breakpoint", "list"},
	{ActionSelect, []string{"enter"}, "Seek to breakpoint", "list"},
	{ActionDelete, []string{"d", "delete"}, "Remove breakpoint", "list"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// DisplayKey returns the label shown for key in help.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
