// Package control implements the session's control side: the message
// protocol, the control handler that owns the terminal, and the input reader.
package control

import "github.com/llehouerou/tapedeck/internal/terminal"

// Buffer is the capacity of a session's message channel.
const Buffer = 64

// Message is a control event. The handler consumes messages in arrival order
// with an exhaustive type switch; every variant lives in this file.
type Message interface {
	isMessage()
}

// Terminate is sent once by the playback driver, always last.
type Terminate struct{}

// SongStarted is sent by the driver right before a song starts streaming.
type SongStarted struct {
	Index int
}

// RecoverableError is displayed but never ends the session.
type RecoverableError struct {
	Text string
}

// KeyEvent carries one key press from the input reader.
type KeyEvent struct {
	Key terminal.Key
}

func (Terminate) isMessage()        {}
func (SongStarted) isMessage()      {}
func (RecoverableError) isMessage() {}
func (KeyEvent) isMessage()         {}
