package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/keymap"
	"github.com/llehouerou/tapedeck/internal/notify"
	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/playlists"
	"github.com/llehouerou/tapedeck/internal/session"
	"github.com/llehouerou/tapedeck/internal/stderr"
)

type playOptions struct {
	isPlaylist bool
	repeat     bool
	volume     float64
}

func newPlayCmd(a *app) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play <file-or-dir>",
		Short: "Play a sound file, a directory of sound files or a playlist",
		Long: `Play a sound file, every file in a directory or, with --playlist, a
saved playlist. Volume changes made while playing a playlist can be
saved back to it with the save key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			volumeSet := cmd.Flags().Changed("volume")
			return a.runPlay(args[0], opts, volumeSet)
		},
	}

	cmd.Flags().BoolVarP(&opts.isPlaylist, "playlist", "p", false, "the given file is a playlist")
	cmd.Flags().BoolVar(&opts.repeat, "repeat", false, "play songs in a loop")
	cmd.Flags().Float64Var(&opts.volume, "volume", 1.0, "overrides the playlist volume")
	return cmd
}

// loadForPlay builds the session playlist and returns the path saves go to,
// empty when playing files directly.
func (a *app) loadForPlay(path string, opts *playOptions, volumeSet bool) (*playlist.Playlist, string, error) {
	if volumeSet && opts.volume < 0 {
		return nil, "", fmt.Errorf("invalid volume %g: must not be negative", opts.volume)
	}

	var (
		p        *playlist.Playlist
		savePath string
	)
	if opts.isPlaylist {
		loaded, err := playlists.Load(path)
		if err != nil {
			return nil, "", errorWith(errmsg.OpPlaylistLoad, path, err)
		}
		p, savePath = loaded, path
	} else {
		built, skipped, err := playlists.FromPath(path, a.cfg.GetPlaybackConfig().Extensions)
		if err != nil {
			return nil, "", errorWith(errmsg.OpSongScan, path, err)
		}
		for _, e := range skipped {
			fmt.Fprintln(a.stderr, e)
		}
		p = built
	}

	if volumeSet {
		p.Config.Volume = opts.volume
	}
	if p.Len() == 0 {
		return nil, "", playback.ErrEmptyPlaylist
	}
	return p, savePath, nil
}

func (a *app) runPlay(path string, opts *playOptions, volumeSet bool) error {
	p, savePath, err := a.loadForPlay(path, opts, volumeSet)
	if err != nil {
		return err
	}

	bindings, err := keymap.WithOverrides(keymap.Bindings, a.cfg.Keys)
	if err != nil {
		return errorf(errmsg.OpConfigLoad, err)
	}

	// Native audio backends print to fd 2 while the terminal is raw.
	var lines <-chan string
	if a.captureStderr && a.logFile != logToStderr {
		capture, err := stderr.Start()
		if err != nil {
			a.logger.Warn().Err(err).Msg("Stderr capture unavailable")
		} else {
			defer capture.Stop()
			lines = capture.Lines()
		}
	}

	pc := a.cfg.GetPlaybackConfig()
	engine, err := a.newEngine(pc.SampleRate, pc.Buffer())
	if err != nil {
		a.logger.Error().Err(err).Int("sample_rate", pc.SampleRate).Msg("Audio output setup failed")
		return fmt.Errorf("%w: %w", playback.ErrStreamSetup, err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close audio output")
		}
	}()

	d := &playback.Driver{
		State:    session.New(savePath, p),
		Engine:   engine,
		Terminal: a.newTerminal(),
		Keys:     keymap.NewResolver(bindings),
		Save:     playlists.Save,
		Repeat:   opts.repeat,
		Stderr:   lines,
		Logger:   a.logger,
	}

	if history := a.historyStore(); history != nil {
		defer history.Close()
		d.History = history
	}

	if a.cfg.Notify.Enabled {
		n, err := notify.New()
		if err != nil {
			a.logger.Warn().Err(err).Msg("Notifications unavailable")
		} else {
			songs := notify.NewSongNotifier(n)
			defer func() { _ = songs.Dismiss() }()
			d.Announcer = songs
		}
	}

	a.logger.Info().
		Str("path", path).
		Bool("playlist", opts.isPlaylist).
		Int("songs", p.Len()).
		Msg("Starting session")

	if err := d.Run(); err != nil {
		a.logger.Error().Err(err).Msg("Session failed")
		return err
	}
	a.logger.Info().Msg("Session finished")
	return nil
}
