// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playlist document operations
	OpPlaylistLoad     Op = "load playlist"
	OpPlaylistSave     Op = "save playlist"
	OpPlaylistAddSong  Op = "add song to playlist"
	OpPlaylistValidate Op = "validate playlist"

	// Song operations
	OpSongOpen Op = "open song"
	OpSongPlay Op = "play song"
	OpSongScan Op = "scan songs"

	// Session operations
	OpTerminalSetup Op = "set up terminal"
	OpTerminalWrite Op = "write to terminal"
	OpReadInput     Op = "read input"
	OpAudioSetup    Op = "open audio output"

	// Side services
	OpHistoryRecord Op = "record play history"
	OpHistoryLoad   Op = "load play history"
	OpNotify        Op = "send notification"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
