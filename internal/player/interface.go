// internal/player/interface.go
package player

// Interface defines the audio engine contract for dependency injection and testing.
type Interface interface {
	Open(path string) (*Source, error)
	Play(src *Source, gain float64) error
	SetGain(gain float64)
	Pause()
	Resume()
	Toggle()
	IsPaused() bool
	State() State
	Clear()
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
