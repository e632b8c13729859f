package control

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/llehouerou/tapedeck/internal/terminal"
)

var errWriteFailed = errors.New("write failed")

// fakeTerminal records raw-mode calls and captures output.
type fakeTerminal struct {
	mu         sync.Mutex
	out        bytes.Buffer
	rawErr     error
	restoreErr error
	writeErr   error
	enabled    int
	disabled   int
}

func (f *fakeTerminal) EnableRawMode() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rawErr != nil {
		return f.rawErr
	}
	f.enabled++
	return nil
}

func (f *fakeTerminal) DisableRawMode() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled++
	return f.restoreErr
}

func (f *fakeTerminal) Writer() io.Writer { return f }

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.out.Write(p)
}

func (f *fakeTerminal) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

// fakeKeys returns queued keys, then err (or blocks until release when err is nil).
type fakeKeys struct {
	keys    chan terminal.Key
	err     error
	release chan struct{}
}

func newFakeKeys(keys ...terminal.Key) *fakeKeys {
	ch := make(chan terminal.Key, len(keys))
	for _, k := range keys {
		ch <- k
	}
	return &fakeKeys{keys: ch, release: make(chan struct{})}
}

func (f *fakeKeys) ReadKey() (terminal.Key, error) {
	select {
	case k := <-f.keys:
		return k, nil
	default:
	}
	if f.err != nil {
		return "", f.err
	}
	<-f.release
	return "", io.EOF
}
