//go:build !windows

// Package stderr captures output that native audio libraries (ALSA, the
// PulseAudio shim) write straight to file descriptor 2. During playback the
// terminal is in raw mode, so those lines are turned into status messages
// instead of being printed over the player.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	lines      chan string
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
}

// Start begins capturing stderr. On error nothing is redirected and output
// keeps going to the original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		lines:      make(chan string, 100),
		origStderr: orig,
		pipeRead:   r,
		pipeWrite:  w,
		done:       make(chan struct{}),
	}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.pipeRead)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// Nobody is listening fast enough; drop the line.
		}
	}
}

// Lines returns captured non-empty lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop restores the original stderr and waits for the reader to drain.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(c.origStderr)
	c.pipeWrite.Close()
	<-c.done
	c.pipeRead.Close()
}
