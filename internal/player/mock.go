// internal/player/mock.go
package player

import "sync"

// Mock is a test double for Player. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	state     State
	paused    bool
	openErrs  map[string]error
	playErrs  map[string]error
	openCalls []string
	playCalls []PlayCall
	gains     []float64
	clears    uint64
	closed    bool
	onPlay    func(path string)
	onOpen    func(path string)
	skipped   []string
}

// PlayCall records one Play invocation.
type PlayCall struct {
	Path string
	Gain float64
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		openErrs: make(map[string]error),
		playErrs: make(map[string]error),
	}
}

// Open records the call and runs the OnOpen hook, standing in for decoder
// setup.
func (m *Mock) Open(path string) (*Source, error) {
	m.mu.Lock()
	m.openCalls = append(m.openCalls, path)
	clears := m.clears
	hook := m.onOpen
	err := m.openErrs[path]
	m.mu.Unlock()

	if hook != nil {
		hook(path)
	}
	if err != nil {
		return nil, err
	}
	return &Source{Path: path, clears: clears}, nil
}

// Play records the call, runs the OnPlay hook and returns immediately. Like
// Player, it skips a source opened before the latest Clear.
func (m *Mock) Play(src *Source, gain float64) error {
	if src == nil {
		return ErrNoSource
	}
	m.mu.Lock()
	if m.clears != src.clears {
		m.skipped = append(m.skipped, src.Path)
		m.mu.Unlock()
		return nil
	}
	m.playCalls = append(m.playCalls, PlayCall{Path: src.Path, Gain: gain})
	m.state = Playing
	hook := m.onPlay
	err := m.playErrs[src.Path]
	m.mu.Unlock()

	if hook != nil {
		hook(src.Path)
	}

	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
	return err
}

func (m *Mock) SetGain(gain float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gains = append(m.gains, gain)
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = !m.paused
}

func (m *Mock) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing && m.paused {
		return Paused
	}
	return m.state
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.paused = false
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetOpenError makes Open fail for path.
func (m *Mock) SetOpenError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErrs[path] = err
}

// SetPlayError makes Play fail for path.
func (m *Mock) SetPlayError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[path] = err
}

// OnPlay registers a hook run inside Play, standing in for the time a song
// takes to play.
func (m *Mock) OnPlay(fn func(path string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPlay = fn
}

// OnOpen registers a hook run inside Open.
func (m *Mock) OnOpen(fn func(path string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOpen = fn
}

// SetState sets the state reported while no Play is in progress.
func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

func (m *Mock) PlayCalls() []PlayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayCall(nil), m.playCalls...)
}

func (m *Mock) Gains() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.gains...)
}

func (m *Mock) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(m.clears)
}

// Skipped returns the paths Play dropped because of a Clear during Open.
func (m *Mock) Skipped() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.skipped...)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
