// Package terminal wraps raw-mode keyboard input and status output.
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by EnableRawMode when input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

type Terminal struct {
	in  *os.File
	out io.Writer
	r   *bufio.Reader

	mu       sync.Mutex
	oldState *term.State
}

// New creates a terminal reading keys from in and writing status to out.
func New(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, r: bufio.NewReader(in)}
}

// Stdio returns a terminal on the process's stdin and stdout.
func Stdio() *Terminal {
	return New(os.Stdin, os.Stdout)
}

func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.oldState != nil {
		return nil
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.oldState = state
	return nil
}

// DisableRawMode restores the mode saved by EnableRawMode. It is a no-op if
// raw mode is not enabled.
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
	return err
}

// ReadKey blocks until one key press is available.
func (t *Terminal) ReadKey() (Key, error) {
	return Decode(t.r)
}

func (t *Terminal) Writer() io.Writer {
	return t.out
}
