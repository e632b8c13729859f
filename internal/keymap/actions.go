// Package keymap defines key bindings and action dispatch for playback controls.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionPlayPause  Action = "play_pause"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionNext       Action = "next"
	ActionSave       Action = "save"
)

// Actions lists every action in legend order.
var Actions = []Action{
	ActionQuit,
	ActionHelp,
	ActionPlayPause,
	ActionVolumeUp,
	ActionVolumeDown,
	ActionNext,
	ActionSave,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
