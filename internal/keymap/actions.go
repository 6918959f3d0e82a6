// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit           Action = "quit"
	ActionHelp           Action = "help"
	ActionOpen           Action = "open"            // o - prompt for a path
	ActionSave           Action = "save"            // ctrl+s
	ActionSaveAs         Action = "save_as"         // S
	ActionExportChapters Action = "export_chapters" // E - audio copy with chapter tags
	ActionClose          Action = "close"           // ctrl+w

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionReset       Action = "reset"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionSpeedUp     Action = "speed_up"
	ActionSpeedDown   Action = "speed_down"

	// Breakpoint actions
	ActionPrevBreakpoint   Action = "prev_breakpoint"
	ActionNextBreakpoint   Action = "next_breakpoint"
	ActionAddBreakpoint    Action = "add_breakpoint"    // b - no hint
	ActionAddWithHint      Action = "add_with_hint"     // B - prompt for a hint
	ActionRemoveNearest    Action = "remove_nearest"    // x
	ActionClearBreakpoints Action = "clear_breakpoints" // C
	ActionUndo             Action = "undo"              // u / ctrl+z
	ActionRedo             Action = "redo"              // ctrl+r / U

	// Breakpoint list navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - seek to the selected breakpoint
	ActionDelete    Action = "delete" // d/delete - remove the selected breakpoint
)
