// Package playlists reads and writes playlist documents and builds playlists
// from files and directories on disk.
package playlists

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/llehouerou/tapedeck/internal/playlist"
)

// ErrInvalidDocument is returned when a playlist file parses but breaks a
// playlist invariant.
var ErrInvalidDocument = errors.New("invalid playlist document")

// document is the on-disk layout.
type document struct {
	GlobalConfig playlist.Config `json:"global_config"`
	Songs        []playlist.Song `json:"songs"`
}

// songEntry tells a missing volume apart from an explicit zero.
type songEntry struct {
	Path   string `json:"path"`
	Config struct {
		Volume *float64 `json:"volume"`
	} `json:"config"`
}

type loadedDocument struct {
	GlobalConfig playlist.Config `json:"global_config"`
	Songs        []songEntry     `json:"songs"`
}

// Load reads the playlist document at path. Missing settings take their
// defaults; a duplicate path or a negative volume is rejected.
func Load(path string) (*playlist.Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := loadedDocument{GlobalConfig: playlist.NewConfig()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.GlobalConfig.Volume < 0 {
		return nil, fmt.Errorf("%w: negative global volume", ErrInvalidDocument)
	}

	p := playlist.New()
	p.Config = doc.GlobalConfig
	for i, entry := range doc.Songs {
		if entry.Path == "" {
			return nil, fmt.Errorf("%w: song %d has no path", ErrInvalidDocument, i)
		}
		song := playlist.NewSong(entry.Path)
		if v := entry.Config.Volume; v != nil {
			if *v < 0 {
				return nil, fmt.Errorf("%w: negative volume for %s", ErrInvalidDocument, entry.Path)
			}
			song.Config.Volume = *v
		}
		if err := p.Add(song); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}
	return p, nil
}

// Save writes p to path as indented JSON. The file is replaced atomically so
// an interrupted save never leaves a truncated playlist behind.
func Save(p *playlist.Playlist, path string) error {
	doc := document{GlobalConfig: p.Config, Songs: p.Songs()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// CreateTemp uses 0600; keep the mode of the playlist being replaced.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// LoadOrNew loads path, or returns an empty playlist if the file does not
// exist yet.
func LoadOrNew(path string) (*playlist.Playlist, bool, error) {
	p, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return playlist.New(), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}
