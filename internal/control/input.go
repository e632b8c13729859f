package control

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/session"
	"github.com/llehouerou/tapedeck/internal/terminal"
)

// KeyReader blocks until a key is pressed.
type KeyReader interface {
	ReadKey() (terminal.Key, error)
}

// InputReader forwards key presses to the handler.
type InputReader struct {
	Keys   KeyReader
	State  *session.State
	Engine player.Interface
	Logger zerolog.Logger
}

// Run reads keys and sends them on out until reading fails or done is
// closed. A read failure while the session is still running aborts it.
func (r *InputReader) Run(out chan<- Message, done <-chan struct{}) {
	for {
		key, err := r.Keys.ReadKey()
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			r.Logger.Error().Err(err).Str("component", "input").Msg("Failed to read input")
			r.State.Abort()
			r.Engine.Clear()
			return
		}

		select {
		case out <- KeyEvent{Key: key}:
		case <-done:
			return
		}
	}
}
