package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/playlists"
)

type editOptions struct {
	file     string
	volume   float64
	random   playlist.RandomMode
	validate bool

	volumeSet bool
	randomSet bool
}

func newEditCmd(a *app) *cobra.Command {
	opts := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit <playlist>",
		Short: "Edit or create a playlist",
		Long: `Edit a playlist, creating it if it does not exist.

Unless songs are repeating, the random modes 'on' and 'shuffle' behave the same.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.volumeSet = cmd.Flags().Changed("volume")
			opts.randomSet = cmd.Flags().Changed("random")
			return a.runEdit(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "sound file or directory of sound files to add")
	cmd.Flags().Float64Var(&opts.volume, "volume", 1.0, "playlist volume, applied on top of each song's volume")
	cmd.Flags().Var(&opts.random, "random", "play order: off, on or shuffle")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "remove songs that cannot be decoded")
	return cmd
}

func (a *app) runEdit(path string, opts *editOptions) error {
	if opts.volumeSet && opts.volume < 0 {
		return fmt.Errorf("invalid volume %g: must not be negative", opts.volume)
	}

	p, created, err := playlists.LoadOrNew(path)
	if err != nil {
		return errorWith(errmsg.OpPlaylistLoad, path, err)
	}
	if created {
		a.logger.Info().Str("path", path).Msg("Creating playlist")
	}

	if err := a.editPlaylist(p, opts); err != nil {
		return err
	}

	if err := playlists.Save(p, path); err != nil {
		return errorWith(errmsg.OpPlaylistSave, path, err)
	}
	a.logger.Info().Str("path", path).Int("songs", p.Len()).Msg("Playlist saved")
	return nil
}

func (a *app) editPlaylist(p *playlist.Playlist, opts *editOptions) error {
	if opts.file != "" {
		songs, err := playlists.Scan(opts.file, a.cfg.GetPlaybackConfig().Extensions)
		if err != nil {
			return errorWith(errmsg.OpPlaylistAddSong, opts.file, err)
		}
		for _, e := range playlists.AddAll(p, songs) {
			fmt.Fprintln(a.stderr, e)
		}
	}
	if opts.volumeSet {
		p.Config.Volume = opts.volume
	}
	if opts.randomSet {
		p.Config.Random = opts.random
	}
	if opts.validate {
		removed := p.Filter(func(s playlist.Song) bool {
			return player.CanDecode(s.Path)
		})
		for _, s := range removed {
			fmt.Fprintf(a.stderr, "Filtered invalid audio file: %s\n", s.Name())
			a.logger.Info().Str("path", s.Path).Msg("Removed undecodable song")
		}
	}
	return nil
}
