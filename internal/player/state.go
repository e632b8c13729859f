// internal/player/state.go
package player

// State describes what the engine is doing.
//
//	Stopped: no item loaded (between songs, or after Clear)
//	Playing: an item is streaming
//	Paused:  an item is loaded but paused
//
// Pausing while Stopped is remembered and applies to the next item.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if an item is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
