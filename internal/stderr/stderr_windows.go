//go:build windows

// Package stderr provides a pass-through capture for Windows, where the
// audio backend does not write to the process stderr.
package stderr

// Capture captures nothing on Windows.
type Capture struct {
	lines chan string
}

func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines never yields a line and is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

func (c *Capture) Stop() {
	close(c.lines)
}
