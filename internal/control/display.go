package control

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// Display writes status lines to a raw-mode terminal. Messages stay on
// screen; an action line (volume, pause, help) is overwritten by whatever is
// written next.
type Display struct {
	w             io.Writer
	lastWasAction bool
}

func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Message writes a line that stays on screen.
func (d *Display) Message(text string) error {
	return d.write(text)
}

// Action writes a line that the next output replaces.
func (d *Display) Action(text string) error {
	if err := d.write(text); err != nil {
		return err
	}
	d.lastWasAction = true
	return nil
}

// Error writes a line in the error style that stays on screen.
func (d *Display) Error(text string) error {
	return d.write(errorStyle.Render(text))
}

// Keep makes the current line permanent.
func (d *Display) Keep() {
	d.lastWasAction = false
}

func (d *Display) write(text string) error {
	var b strings.Builder
	if d.lastWasAction {
		b.WriteString(ansi.EraseEntireLine)
	} else {
		b.WriteString("\n")
	}
	b.WriteString(ansi.CursorHorizontalAbsolute(1))
	b.WriteString(text)
	d.lastWasAction = false

	_, err := io.WriteString(d.w, b.String())
	return err
}
