// internal/state/interface.go
package state

import "time"

// Interface defines the history store contract for dependency injection and testing.
type Interface interface {
	RecordPlay(path string, at time.Time) error
	Stats(paths []string) (map[string]PlayStats, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
