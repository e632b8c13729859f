package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// TrackInfo holds the tag fields used for display.
type TrackInfo struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// Name returns "Artist - Title" when both are tagged, the title alone when
// only it is, otherwise the file name.
func (t *TrackInfo) Name() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return filepath.Base(t.Path)
	}
}

// ReadTrackInfo reads tags from path. dhowden/tag fails on some UTF-16 ID3
// frames; MP3 files fall back to id3v2 in that case.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	info, err := readTag(path)
	if err == nil {
		return info, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if fallback, ferr := readID3v2(path); ferr == nil {
			return fallback, nil
		}
	}
	return nil, err
}

// DisplayName returns the name shown when a song starts playing.
func DisplayName(path string) string {
	info, err := ReadTrackInfo(path)
	if err != nil {
		return filepath.Base(path)
	}
	return info.Name()
}

func readTag(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return &TrackInfo{
		Path:   path,
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
	}, nil
}

func readID3v2(path string) (*TrackInfo, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer t.Close()

	return &TrackInfo{
		Path:   path,
		Title:  strings.TrimSpace(t.Title()),
		Artist: strings.TrimSpace(t.Artist()),
		Album:  strings.TrimSpace(t.Album()),
	}, nil
}
