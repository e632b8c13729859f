// Package session holds the playback state shared by the playback driver and
// the control handler for the lifetime of one play invocation.
//
// Every method takes the lock for a short, non-blocking critical section.
// Callers never hold it across channel operations, engine calls or I/O.
package session

import (
	"sync"

	"github.com/llehouerou/tapedeck/internal/playlist"
	"github.com/llehouerou/tapedeck/internal/volume"
)

type State struct {
	mu       sync.Mutex
	savePath string
	playlist *playlist.Playlist
	stopped  bool
	hadError bool
}

// Snapshot is a copy of what the driver needs to start one song.
type Snapshot struct {
	Index int
	Song  playlist.Song
	Gain  float64
}

// New creates the state for a session. An empty savePath means the session
// was started from a file or directory and cannot be saved.
func New(savePath string, p *playlist.Playlist) *State {
	return &State{savePath: savePath, playlist: p}
}

// SavePath returns the playlist document path, if the session has one.
func (s *State) SavePath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePath, s.savePath != ""
}

func (s *State) SongCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Len()
}

// RandomMode returns the playlist's configured order.
func (s *State) RandomMode() playlist.RandomMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Config.Random
}

// Snapshot copies song index and its effective gain.
func (s *State) Snapshot(index int) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song := s.playlist.Song(index)
	if song == nil {
		return Snapshot{}, false
	}
	gain, _ := s.playlist.Gain(index)
	return Snapshot{Index: index, Song: *song, Gain: gain}, true
}

// Song returns a copy of the song at index.
func (s *State) Song(index int) (playlist.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song := s.playlist.Song(index)
	if song == nil {
		return playlist.Song{}, false
	}
	return *song, true
}

// AdjustVolume steps the volume of the song at index up or down and returns
// the song's new volume and its new effective gain.
func (s *State) AdjustVolume(index int, increase bool) (vol, gain float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song := s.playlist.Song(index)
	if song == nil {
		return 0, 0, false
	}
	song.Config.Volume = volume.Adjust(song.Config.Volume, increase)
	gain, _ = s.playlist.Gain(index)
	return song.Config.Volume, gain, true
}

// Playlist returns a deep copy of the playlist, for saving outside the lock.
func (s *State) Playlist() *playlist.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Clone()
}

// Stop marks the session as stopped. Stopping is permanent.
func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *State) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Abort records an unrecoverable control failure and stops the session.
func (s *State) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hadError = true
	s.stopped = true
}

// Failed reports whether Abort was called.
func (s *State) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hadError
}
