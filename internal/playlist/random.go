package playlist

import (
	"fmt"
	"strings"
)

// RandomMode selects the play order of a playlist.
//
//   - RandomOff plays songs in playlist order.
//   - RandomShuffle permutes the playlist once per pass.
//   - RandomTrue picks every song independently, so repeats are possible.
type RandomMode int

const (
	RandomOff RandomMode = iota
	RandomTrue
	RandomShuffle
)

// RandomModes lists the accepted text forms, in display order.
var RandomModes = []string{"off", "on", "shuffle"}

// String returns the text form used on the command line and in playlist files.
func (m RandomMode) String() string {
	switch m {
	case RandomOff:
		return "off"
	case RandomTrue:
		return "on"
	case RandomShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ParseRandomMode parses a text form, case-insensitively.
func ParseRandomMode(s string) (RandomMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return RandomOff, nil
	case "on", "true":
		return RandomTrue, nil
	case "shuffle":
		return RandomShuffle, nil
	default:
		return RandomOff, fmt.Errorf("invalid random mode %q (want one of %s)", s, strings.Join(RandomModes, ", "))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m RandomMode) MarshalText() ([]byte, error) {
	if m < RandomOff || m > RandomShuffle {
		return nil, fmt.Errorf("invalid random mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RandomMode) UnmarshalText(text []byte) error {
	parsed, err := ParseRandomMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements pflag.Value so the mode can be used directly as a flag.
func (m *RandomMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (m *RandomMode) Type() string {
	return "off|on|shuffle"
}
