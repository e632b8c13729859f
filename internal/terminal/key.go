package terminal

import (
	"bufio"
	"fmt"
	"unicode/utf8"
)

// Key names a single key press, e.g. "q", "space", "up", "ctrl+c".
type Key string

const (
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeySpace     Key = "space"
	KeyEnter     Key = "enter"
	KeyTab       Key = "tab"
	KeyBackspace Key = "backspace"
	KeyEsc       Key = "esc"
	KeyCtrlC     Key = "ctrl+c"
	KeyUnknown   Key = ""
)

const esc = 0x1b

// Decode reads one key press from r. Escape sequences are only recognised
// when the whole sequence is already buffered, so a lone ESC press is
// reported as KeyEsc instead of blocking for more input.
func Decode(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return KeyUnknown, err
	}

	switch {
	case b == esc:
		if r.Buffered() == 0 {
			return KeyEsc, nil
		}
		return decodeEscape(r)
	case b == ' ':
		return KeySpace, nil
	case b == '\r' || b == '\n':
		return KeyEnter, nil
	case b == '\t':
		return KeyTab, nil
	case b == 0x7f || b == 0x08:
		return KeyBackspace, nil
	case b == 0x03:
		return KeyCtrlC, nil
	case b >= 0x01 && b <= 0x1a:
		return Key(fmt.Sprintf("ctrl+%c", 'a'+b-1)), nil
	case b < utf8.RuneSelf:
		return Key(string(rune(b))), nil
	}

	if err := r.UnreadByte(); err != nil {
		return KeyUnknown, err
	}
	ru, _, err := r.ReadRune()
	if err != nil {
		return KeyUnknown, err
	}
	return Key(string(ru)), nil
}

func decodeEscape(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return KeyUnknown, err
	}
	if b != '[' && b != 'O' {
		return Key("alt+" + string(rune(b))), nil
	}

	// CSI/SS3: parameters then a final byte in 0x40-0x7e.
	var final byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return KeyUnknown, err
		}
		if c >= 0x40 && c <= 0x7e {
			final = c
			break
		}
	}

	switch final {
	case 'A':
		return KeyUp, nil
	case 'B':
		return KeyDown, nil
	case 'C':
		return KeyRight, nil
	case 'D':
		return KeyLeft, nil
	case 'H':
		return KeyHome, nil
	case 'F':
		return KeyEnd, nil
	default:
		return KeyUnknown, nil
	}
}
