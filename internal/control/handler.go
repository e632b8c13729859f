package control

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/keymap"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/session"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/terminal"
	"github.com/llehouerou/tapedeck/internal/volume"
)

// ErrTerminalMode is returned when the handler cannot manage the terminal.
var ErrTerminalMode = errors.New("terminal failure")

// Terminal is the part of the terminal facility the handler owns.
type Terminal interface {
	EnableRawMode() error
	DisableRawMode() error
	Writer() io.Writer
}

// SaveFunc writes a playlist document to path.
type SaveFunc func(p *playlist.Playlist, path string) error

// Announcer is told about every song that starts.
type Announcer interface {
	SongStarted(name string) error
}

// Deps are the collaborators of a Handler. History, Announcer and Describe
// are optional.
type Deps struct {
	State     *session.State
	Engine    player.Interface
	Terminal  Terminal
	Keys      *keymap.Resolver
	Save      SaveFunc
	History   state.Interface
	Announcer Announcer
	Describe  func(path string) string
	Logger    zerolog.Logger
}

// Handler consumes the session's messages. It owns raw mode for its whole
// run and is the only writer to the terminal.
type Handler struct {
	deps    Deps
	display *Display
	now     func() time.Time
	current int
}

func NewHandler(deps Deps) *Handler {
	if deps.Describe == nil {
		deps.Describe = player.DisplayName
	}
	if deps.Keys == nil {
		deps.Keys = keymap.NewResolver(keymap.Bindings)
	}
	deps.Logger = deps.Logger.With().Str("component", "controls").Logger()
	return &Handler{
		deps:    deps,
		display: NewDisplay(deps.Terminal.Writer()),
		now:     time.Now,
		current: -1,
	}
}

// Run enables raw mode, processes messages until Terminate and restores the
// terminal. Any terminal failure aborts the session before Run returns.
func (h *Handler) Run(messages <-chan Message) (err error) {
	if err := h.deps.Terminal.EnableRawMode(); err != nil {
		h.deps.Logger.Error().Err(err).Msg("Failed to enable raw mode")
		_ = h.display.Error(errmsg.Format(errmsg.OpTerminalSetup, err))
		h.abort()
		return fmt.Errorf("%w: %w", ErrTerminalMode, err)
	}

	defer func() {
		if rerr := h.deps.Terminal.DisableRawMode(); rerr != nil {
			h.deps.Logger.Error().Err(rerr).Msg("Failed to restore terminal")
			h.abort()
			if err == nil {
				err = fmt.Errorf("%w: %w", ErrTerminalMode, rerr)
			}
		}
		_, _ = io.WriteString(h.deps.Terminal.Writer(), "\n"+ansi.CursorHorizontalAbsolute(1))
	}()

	if err := h.loop(messages); err != nil {
		h.deps.Logger.Error().Err(err).Msg("Control loop failed")
		h.abort()
		return fmt.Errorf("%w: %w", ErrTerminalMode, err)
	}
	return nil
}

func (h *Handler) loop(messages <-chan Message) error {
	if err := h.display.Action(h.deps.Keys.Legend()); err != nil {
		return err
	}
	h.display.Keep()

	for msg := range messages {
		var err error
		switch m := msg.(type) {
		case Terminate:
			return nil
		case KeyEvent:
			err = h.handleKey(m.Key)
		case SongStarted:
			err = h.songStarted(m.Index)
		case RecoverableError:
			err = h.display.Error(m.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) handleKey(key terminal.Key) error {
	action := h.deps.Keys.Resolve(string(key))
	switch action {
	case keymap.ActionQuit:
		h.deps.State.Stop()
		h.deps.Engine.Clear()
		return nil
	case keymap.ActionHelp:
		return h.display.Action(h.deps.Keys.Legend())
	case keymap.ActionPlayPause:
		return h.togglePause()
	case keymap.ActionVolumeUp:
		return h.adjustVolume(true)
	case keymap.ActionVolumeDown:
		return h.adjustVolume(false)
	case keymap.ActionNext:
		h.deps.Engine.Clear()
		return nil
	case keymap.ActionSave:
		return h.save()
	default:
		return nil
	}
}

func (h *Handler) togglePause() error {
	if h.deps.Engine.IsPaused() {
		h.deps.Engine.Resume()
		return h.display.Action("Play")
	}
	h.deps.Engine.Pause()
	if !h.deps.Engine.State().IsActive() {
		// The engine keeps the pause for the next song.
		return h.display.Action("Pause (next song)")
	}
	return h.display.Action("Pause")
}

func (h *Handler) adjustVolume(up bool) error {
	vol, gain, ok := h.deps.State.AdjustVolume(h.current, up)
	if !ok {
		return nil
	}
	h.deps.Engine.SetGain(gain)
	return h.display.Action(fmt.Sprintf("Volume %d%%", volume.Percent(vol)))
}

func (h *Handler) save() error {
	path, ok := h.deps.State.SavePath()
	if !ok || h.deps.Save == nil {
		return h.display.Error("Unable to save: direct play mode.")
	}

	p := h.deps.State.Playlist()
	if err := h.deps.Save(p, path); err != nil {
		h.deps.Logger.Warn().Err(err).Str("path", path).Msg("Failed to save playlist")
		return h.display.Error(errmsg.FormatWith(errmsg.OpPlaylistSave, path, err))
	}
	h.deps.Logger.Info().Str("path", path).Msg("Playlist saved")
	return h.display.Action("Successfully saved to " + path)
}

func (h *Handler) songStarted(index int) error {
	h.current = index
	song, ok := h.deps.State.Song(index)
	if !ok {
		return nil
	}
	name := h.deps.Describe(song.Path)

	if h.deps.History != nil {
		if err := h.deps.History.RecordPlay(song.Path, h.now()); err != nil {
			h.deps.Logger.Warn().Err(err).Str("path", song.Path).Msg("Failed to record play")
		}
	}
	if h.deps.Announcer != nil {
		if err := h.deps.Announcer.SongStarted(name); err != nil {
			h.deps.Logger.Debug().Err(err).Msg("Failed to send notification")
		}
	}

	h.deps.Logger.Debug().Int("index", index).Str("path", song.Path).Msg("Song started")
	return h.display.Message("Playing " + name)
}

// abort marks the session failed and stops the current song so the driver
// notices promptly.
func (h *Handler) abort() {
	h.deps.State.Abort()
	h.deps.Engine.Clear()
}
