package playlist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrDuplicateSong is returned when a song's path is already in the playlist.
var ErrDuplicateSong = errors.New("song already exists")

const defaultVolume = 1.0

// SongConfig holds per-song playback settings.
type SongConfig struct {
	Volume float64 `json:"volume"`
}

// Song is a single audio file in a playlist. Its path is its identity.
type Song struct {
	Path   string     `json:"path"`
	Config SongConfig `json:"config"`
}

// NewSong creates a song with default settings.
func NewSong(path string) Song {
	return Song{
		Path:   path,
		Config: SongConfig{Volume: defaultVolume},
	}
}

// Name returns the file name of the song, or the full path if it has none.
func (s Song) Name() string {
	if name := filepath.Base(s.Path); name != "." && name != string(filepath.Separator) {
		return name
	}
	return s.Path
}

func (s Song) String() string {
	return s.Name()
}

// Config holds settings that apply to the whole playlist.
type Config struct {
	Volume float64    `json:"volume"`
	Random RandomMode `json:"random_mode"`
}

// NewConfig returns the default playlist settings.
func NewConfig() Config {
	return Config{
		Volume: defaultVolume,
		Random: RandomOff,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("Volume: %g; Random mode: %s", c.Volume, c.Random)
}

// Playlist holds an ordered collection of songs with unique paths.
type Playlist struct {
	Config Config
	songs  []Song
}

// New creates a new empty playlist.
func New() *Playlist {
	return &Playlist{
		Config: NewConfig(),
		songs:  make([]Song, 0),
	}
}

// Add appends a song. The playlist is left unchanged if the path is already present.
func (p *Playlist) Add(song Song) error {
	for _, s := range p.songs {
		if s.Path == song.Path {
			return fmt.Errorf("%w: %s", ErrDuplicateSong, s.Path)
		}
	}
	p.songs = append(p.songs, song)
	return nil
}

// Filter keeps the songs for which keep returns true and returns the removed ones.
func (p *Playlist) Filter(keep func(Song) bool) []Song {
	kept := p.songs[:0:0]
	var removed []Song
	for _, s := range p.songs {
		if keep(s) {
			kept = append(kept, s)
		} else {
			removed = append(removed, s)
		}
	}
	p.songs = kept
	return removed
}

// Songs returns a copy of all songs.
func (p *Playlist) Songs() []Song {
	result := make([]Song, len(p.songs))
	copy(result, p.songs)
	return result
}

// Song returns the song at the given index, or nil if out of bounds.
func (p *Playlist) Song(index int) *Song {
	if index < 0 || index >= len(p.songs) {
		return nil
	}
	return &p.songs[index]
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.songs)
}

// Gain returns the effective output gain of the song at index.
func (p *Playlist) Gain(index int) (float64, bool) {
	s := p.Song(index)
	if s == nil {
		return 0, false
	}
	return s.Config.Volume * p.Config.Volume, true
}

// Clone returns a deep copy of the playlist.
func (p *Playlist) Clone() *Playlist {
	return &Playlist{
		Config: p.Config,
		songs:  p.Songs(),
	}
}

// String renders the playlist settings followed by one song per line.
func (p *Playlist) String() string {
	var b strings.Builder
	b.WriteString("Settings:\n  ")
	b.WriteString(p.Config.String())
	b.WriteString("\nSongs:")
	for _, s := range p.songs {
		b.WriteString("\n  ")
		b.WriteString(s.Name())
	}
	return b.String()
}
