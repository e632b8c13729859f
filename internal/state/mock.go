// internal/state/mock.go
package state

import (
	"sync"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	plays  []Play
	err    error
	closed bool
}

// Play is one recorded play.
type Play struct {
	Path string
	At   time.Time
}

// NewMock creates a new mock history store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) RecordPlay(path string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.plays = append(m.plays, Play{Path: path, At: at})
	return nil
}

func (m *Mock) Stats(paths []string) (map[string]PlayStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		wanted[p] = true
	}
	result := make(map[string]PlayStats)
	for _, play := range m.plays {
		if !wanted[play.Path] {
			continue
		}
		s := result[play.Path]
		s.Count++
		if play.At.After(s.LastPlayed) {
			s.LastPlayed = play.At
		}
		result[play.Path] = s
	}
	return result, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Plays() []Play {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Play(nil), m.plays...)
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
