package playlists

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/tapedeck/internal/playlist"
)

// ErrNotFileOrDir is returned by Scan for paths that are neither a regular
// file nor a directory.
var ErrNotFileOrDir = errors.New("expected file or directory")

// Scan returns the songs found at path. A file yields itself; a directory
// yields its regular files (symlinks followed, no recursion) in name order.
// When extensions is non-empty, directory entries are filtered by it.
func Scan(path string, extensions []string) ([]playlist.Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		return []playlist.Song{playlist.NewSong(path)}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFileOrDir, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	filter := newExtFilter(extensions)

	var songs []playlist.Song
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if !filter.match(entry.Name()) {
			continue
		}
		songs = append(songs, playlist.NewSong(full))
	}
	return songs, nil
}

// AddAll appends songs to p, skipping paths already present. One error is
// returned per skipped song.
func AddAll(p *playlist.Playlist, songs []playlist.Song) []error {
	var skipped []error
	for _, s := range songs {
		if err := p.Add(s); err != nil {
			skipped = append(skipped, err)
		}
	}
	return skipped
}

// FromPath builds a playlist from a file or directory.
func FromPath(path string, extensions []string) (*playlist.Playlist, []error, error) {
	songs, err := Scan(path, extensions)
	if err != nil {
		return nil, nil, err
	}
	p := playlist.New()
	skipped := AddAll(p, songs)
	return p, skipped, nil
}

type extFilter map[string]bool

func newExtFilter(extensions []string) extFilter {
	if len(extensions) == 0 {
		return nil
	}
	f := make(extFilter, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f[ext] = true
	}
	return f
}

func (f extFilter) match(name string) bool {
	if len(f) == 0 {
		return true
	}
	return f[strings.ToLower(filepath.Ext(name))]
}
