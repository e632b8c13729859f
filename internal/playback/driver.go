// Package playback drives a session: it walks the playlist in the configured
// order, hands each song to the audio engine and runs the control handler and
// input reader alongside.
package playback

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/tapedeck/internal/control"
	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/keymap"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/session"
	"github.com/llehouerou/tapedeck/internal/state"
)

// Terminal is what a session needs from the terminal: raw mode and output
// for the handler, key presses for the input reader.
type Terminal interface {
	control.Terminal
	control.KeyReader
}

// Driver plays the session's playlist. Run must be called once, from the
// goroutine that owns the session.
type Driver struct {
	State     *session.State
	Engine    player.Interface
	Terminal  Terminal
	Keys      *keymap.Resolver
	Save      control.SaveFunc
	History   state.Interface
	Announcer control.Announcer
	Describe  func(path string) string

	// Rand drives Shuffle and True order. Nil means a time-seeded source.
	Rand   *rand.Rand
	Repeat bool

	// Stderr lines are shown as recoverable errors while the session runs.
	Stderr <-chan string

	Logger zerolog.Logger

	// handler replaces the control handler in tests.
	handler func(<-chan control.Message) error
}

// run carries the channel plumbing of one Run.
type run struct {
	messages chan control.Message
	exited   chan struct{}
	rng      *rand.Rand
}

// Run plays the playlist until it is exhausted or the session is stopped,
// then shuts the handler down and waits for it.
func (d *Driver) Run() error {
	if d.State.SongCount() == 0 {
		return ErrEmptyPlaylist
	}
	log := d.Logger.With().Str("component", "driver").Logger()

	r := &run{
		messages: make(chan control.Message, control.Buffer),
		exited:   make(chan struct{}),
		rng:      d.Rand,
	}
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	var handlerErr error
	go func() {
		defer close(r.exited)
		defer func() {
			if v := recover(); v != nil {
				log.Error().Interface("panic", v).Msg("Control handler panicked")
				handlerErr = fmt.Errorf("%w: %v", ErrControlsCrashed, v)
				d.State.Abort()
				d.Engine.Clear()
			}
		}()
		handlerErr = d.runHandler(r.messages)
	}()

	input := &control.InputReader{
		Keys:   d.Terminal,
		State:  d.State,
		Engine: d.Engine,
		Logger: d.Logger,
	}
	go input.Run(r.messages, r.exited)

	if d.Stderr != nil {
		go d.forwardStderr(r)
	}

	d.playAll(r, log)

	log.Debug().Bool("stopped", d.State.Stopped()).Msg("Playback finished")
	r.send(control.Terminate{})
	<-r.exited

	if errors.Is(handlerErr, ErrControlsCrashed) {
		return handlerErr
	}
	if d.State.Failed() {
		if handlerErr != nil {
			return fmt.Errorf("%w: %w", ErrPlaybackAborted, handlerErr)
		}
		return ErrPlaybackAborted
	}
	return nil
}

func (d *Driver) runHandler(messages <-chan control.Message) error {
	if d.handler != nil {
		return d.handler(messages)
	}
	h := control.NewHandler(control.Deps{
		State:     d.State,
		Engine:    d.Engine,
		Terminal:  d.Terminal,
		Keys:      d.Keys,
		Save:      d.Save,
		History:   d.History,
		Announcer: d.Announcer,
		Describe:  d.Describe,
		Logger:    d.Logger,
	})
	return h.Run(messages)
}

// playAll runs passes until the playlist is exhausted or the session stops.
// True mode with repeat draws songs one at a time and never ends a pass.
func (d *Driver) playAll(r *run, log zerolog.Logger) {
	n := d.State.SongCount()
	mode := d.State.RandomMode()
	log.Info().Int("songs", n).Str("mode", mode.String()).Bool("repeat", d.Repeat).Msg("Starting playback")

	if mode == playlist.RandomTrue && d.Repeat {
		for {
			if !d.playSong(r, playlist.Pick(n, r.rng), log) {
				return
			}
		}
	}

	for {
		for _, i := range playlist.Order(n, mode, r.rng) {
			if !d.playSong(r, i, log) {
				return
			}
		}
		if !d.Repeat || d.State.Stopped() {
			return
		}
	}
}

// playSong plays song index to completion. It returns false when the
// session is over and no further song should start.
func (d *Driver) playSong(r *run, index int, log zerolog.Logger) bool {
	if d.State.Stopped() {
		return false
	}
	snap, ok := d.State.Snapshot(index)
	if !ok {
		return true
	}
	if !r.send(control.SongStarted{Index: index}) {
		return false
	}

	src, err := d.Engine.Open(snap.Song.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", snap.Song.Path).Msg("Failed to open song")
		return r.send(control.RecoverableError{Text: openFailureText(snap.Song.Path, err)})
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Debug().Err(err).Str("path", snap.Song.Path).Msg("Failed to close song")
		}
	}()

	// Opening can take a while; a quit during it must not start the song.
	if d.State.Stopped() {
		log.Debug().Str("path", snap.Song.Path).Msg("Stopped while opening song")
		return false
	}
	if err := d.Engine.Play(src, snap.Gain); err != nil {
		log.Warn().Err(err).Str("path", snap.Song.Path).Msg("Playback error")
		return r.send(control.RecoverableError{Text: errmsg.FormatWith(errmsg.OpSongPlay, snap.Song.Path, err)})
	}
	return true
}

func openFailureText(path string, err error) string {
	if errors.Is(err, player.ErrUnrecognizedFormat) {
		return "Unrecognized format, skipping " + path
	}
	return errmsg.FormatWith(errmsg.OpSongOpen, path, err)
}

func (d *Driver) forwardStderr(r *run) {
	for {
		select {
		case line, ok := <-d.Stderr:
			if !ok {
				return
			}
			if !r.send(control.RecoverableError{Text: line}) {
				return
			}
		case <-r.exited:
			return
		}
	}
}

// send delivers msg unless the handler has already exited.
func (r *run) send(msg control.Message) bool {
	select {
	case <-r.exited:
		return false
	default:
	}
	select {
	case r.messages <- msg:
		return true
	case <-r.exited:
		return false
	}
}
