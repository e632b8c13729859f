// Package cli implements the tapedeck command line.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tapedeck/internal/config"
	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/terminal"
)

// Version is set via ldflags during build.
var Version = "dev"

// app carries what every command needs once the root command has loaded
// the configuration and logger.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg      *config.Config
	logger   zerolog.Logger
	closeLog func() error

	configPath string
	logFile    string
	logLevel   string

	// Replaced in tests.
	newEngine     func(sampleRate int, buffer time.Duration) (player.Interface, error)
	newTerminal   func() playback.Terminal
	openHistory   func(path string) (state.Interface, error)
	captureStderr bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
		newEngine: func(sampleRate int, buffer time.Duration) (player.Interface, error) {
			return player.New(sampleRate, buffer)
		},
		newTerminal: func() playback.Terminal { return terminal.Stdio() },
		openHistory: func(path string) (state.Interface, error) {
			return state.Open(path)
		},
		captureStderr: true,
	}
}

// Execute runs the command line with the process arguments.
func Execute() error {
	a := newApp(os.Stdout, os.Stderr)
	// PersistentPostRunE is skipped when a command fails.
	defer func() { _ = a.close() }()
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tapedeck",
		Short: "Play audio files and playlists from the terminal",
		Long: `tapedeck plays a file, a directory of files or a saved playlist with
live keyboard controls: pause, skip, per-song volume and saving the
adjusted volumes back to the playlist.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.config/tapedeck/config.toml)")
	flags.StringVar(&a.logFile, "log-file", "", `log file, "-" for stderr (default $XDG_STATE_HOME/tapedeck/tapedeck.log)`)
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newPlayCmd(a),
		newEditCmd(a),
		newDisplayCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return errorf(errmsg.OpConfigLoad, err)
	}
	a.cfg = cfg

	logFile := cfg.Log.File
	if cmd.Flags().Changed("log-file") {
		logFile = a.logFile
	}
	level := cfg.LogLevel()
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}

	logger, closeLog, err := setupLogger(logFile, level)
	if err != nil {
		return errorf(errmsg.OpInitialize, err)
	}
	a.logger = logger
	a.closeLog = closeLog
	a.logFile = logFile

	a.logger.Debug().Str("command", cmd.Name()).Str("version", Version).Msg("Starting")
	return nil
}

func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// historyStore opens the play history if it is enabled. Failures are logged
// and leave the command without history.
func (a *app) historyStore() state.Interface {
	if !a.cfg.HistoryEnabled() {
		return nil
	}
	h, err := a.openHistory(a.cfg.History.Path)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Play history unavailable")
		return nil
	}
	return h
}
