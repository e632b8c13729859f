package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Playback PlaybackConfig `koanf:"playback"`
	History  HistoryConfig  `koanf:"history"`
	Notify   NotifyConfig   `koanf:"notify"`
	Log      LogConfig      `koanf:"log"`

	// Keys maps an action name to the keys bound to it, replacing the defaults
	// for that action (e.g. quit = ["q", "x"]).
	Keys map[string][]string `koanf:"keys"`
}

// PlaybackConfig holds audio output settings.
type PlaybackConfig struct {
	SampleRate int      `koanf:"sample_rate"` // speaker rate in Hz (default: 44100)
	BufferMS   int      `koanf:"buffer_ms"`   // speaker buffer (10-1000, default: 100)
	Extensions []string `koanf:"extensions"`  // directory scan filter, empty keeps every file
}

// HistoryConfig holds play history settings.
type HistoryConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/tapedeck/history.db
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	File  string `koanf:"file"`  // "-" logs to stderr, empty uses the state directory
}

// Load reads the default config files, then extra when it is not empty.
// A missing default file is skipped; a missing extra file is an error.
func Load(extra string) (*Config, error) {
	paths := getConfigPaths()
	if extra != "" {
		extra = expandPath(extra)
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, extra)
	}
	return loadFrom(paths)
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tapedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tapedeck", "config.toml"))
	}

	// 2. ./config.toml (pwd)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.SampleRate < 8000 || cfg.SampleRate > 192000 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMS < 10 || cfg.BufferMS > 1000 {
		cfg.BufferMS = 100
	}

	return cfg
}

// Buffer returns the speaker buffer length.
func (p PlaybackConfig) Buffer() time.Duration {
	return time.Duration(p.BufferMS) * time.Millisecond
}

// HistoryEnabled reports whether plays are recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// LogLevel returns the configured level name, "info" when unset.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}
