package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// logToStderr is the --log-file value that sends logs to stderr.
const logToStderr = "-"

// setupLogger creates the process logger. An empty logFile uses the XDG
// state directory. The returned func closes the log file.
func setupLogger(logFile, logLevel string) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if logFile == logToStderr {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
		return logger, func() error { return nil }, nil
	}

	if logFile == "" {
		logFile, err = xdg.StateFile(filepath.Join("tapedeck", "tapedeck.log"))
		if err != nil {
			return zerolog.Nop(), nil, err
		}
	} else if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	logger := newLogger(f, level)
	return logger, f.Close, nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
