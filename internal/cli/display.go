package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/playlists"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/volume"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newDisplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "display <playlist>",
		Short: "Show a playlist's settings and songs",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runDisplay(args[0])
		},
	}
}

func (a *app) runDisplay(path string) error {
	p, err := playlists.Load(path)
	if err != nil {
		return errorWith(errmsg.OpPlaylistLoad, path, err)
	}

	var stats map[string]state.PlayStats
	if history := a.historyStore(); history != nil {
		defer history.Close()
		paths := lo.Map(p.Songs(), func(s playlist.Song, _ int) string { return s.Path })
		stats, err = history.Stats(paths)
		if err != nil {
			a.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpHistoryLoad, err))
			stats = nil
		}
	}

	_, err = io.WriteString(a.stdout, renderPlaylist(p, stats))
	return err
}

// renderPlaylist lists the settings and one line per song. stats may be nil
// when history is disabled.
func renderPlaylist(p *playlist.Playlist, stats map[string]state.PlayStats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Settings:"))
	fmt.Fprintf(&b, "\n  Volume: %d%%; Random mode: %s\n", volume.Percent(p.Config.Volume), p.Config.Random)

	b.WriteString(headerStyle.Render("Songs:"))
	songs := p.Songs()
	if len(songs) == 0 {
		b.WriteString("\n  " + dimStyle.Render("(empty)"))
	}

	width := 0
	for _, s := range songs {
		width = max(width, len(s.Name()))
	}
	for _, s := range songs {
		fmt.Fprintf(&b, "\n  %-*s  %4d%%", width, s.Name(), volume.Percent(s.Config.Volume))
		if stats != nil {
			b.WriteString("  " + dimStyle.Render(playSummary(stats[s.Path])))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func playSummary(s state.PlayStats) string {
	if s.Count == 0 {
		return "never played"
	}
	times := "times"
	if s.Count == 1 {
		times = "time"
	}
	return fmt.Sprintf("played %s %s, last %s", humanize.Comma(int64(s.Count)), times, humanize.Time(s.LastPlayed))
}
