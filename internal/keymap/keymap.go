package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Binding describes a single key binding. Bindings sharing a Description are
// shown as one legend entry, e.g. "Volume: ↑/↓".
type Binding struct {
	Action      Action
	Keys        []string
	Description string
}

// Bindings contains the default key bindings, in legend order.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Exit"},
	{ActionHelp, []string{"h"}, "Help"},
	{ActionPlayPause, []string{"space"}, "Play/Pause"},
	{ActionVolumeUp, []string{"up"}, "Volume"},
	{ActionVolumeDown, []string{"down"}, "Volume"},
	{ActionNext, []string{"right"}, "Next"},
	{ActionSave, []string{"s"}, "Save"},
}

// keySymbols are the legend forms of named keys.
var keySymbols = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
}

// WithOverrides returns a copy of bindings where the keys of each action named
// in overrides are replaced. Unknown action names, empty key lists and a key
// left bound to two actions are errors.
func WithOverrides(bindings []Binding, overrides map[string][]string) ([]Binding, error) {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !Action(name).Valid() {
			return nil, fmt.Errorf("unknown action %q in key bindings", name)
		}
		if len(overrides[name]) == 0 {
			return nil, fmt.Errorf("no keys bound to action %q", name)
		}
	}

	result := make([]Binding, len(bindings))
	for i, b := range bindings {
		if keys, ok := overrides[string(b.Action)]; ok {
			b.Keys = append([]string(nil), keys...)
		} else {
			b.Keys = append([]string(nil), b.Keys...)
		}
		result[i] = b
	}

	owner := make(map[string]Action)
	for _, b := range result {
		for _, key := range b.Keys {
			if prev, ok := owner[key]; ok && prev != b.Action {
				return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, b.Action)
			}
			owner[key] = b.Action
		}
	}
	return result, nil
}

// Legend renders the one-line control summary, using the first key of each
// binding.
func Legend(bindings []Binding) string {
	var parts []string
	var keys []string
	current := ""

	flush := func() {
		if current != "" {
			parts = append(parts, current+": "+strings.Join(keys, "/"))
		}
	}
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		if b.Description != current {
			flush()
			current = b.Description
			keys = keys[:0]
		}
		keys = append(keys, symbol(b.Keys[0]))
	}
	flush()

	return strings.Join(parts, ", ")
}

func symbol(key string) string {
	if s, ok := keySymbols[key]; ok {
		return s
	}
	return key
}
