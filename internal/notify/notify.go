// Package notify shows the playing song as a desktop notification.
package notify

import "strings"

const appName = "tapedeck"

// Notifier keeps at most one notification on screen: each Show replaces the
// previous one until Dismiss.
type Notifier interface {
	Show(summary, body string) error
	Dismiss() error
}

// SongNotifier announces each started song through a Notifier.
type SongNotifier struct {
	n Notifier
}

func NewSongNotifier(n Notifier) *SongNotifier {
	return &SongNotifier{n: n}
}

// SongStarted shows name, which is either "Artist - Title" or a file name.
func (s *SongNotifier) SongStarted(name string) error {
	return s.n.Show(songSummary(name))
}

// Dismiss removes the notification of the last song.
func (s *SongNotifier) Dismiss() error {
	return s.n.Dismiss()
}

// songSummary puts the title in the summary and the artist in the body.
// Names without an artist are shown under "Now playing".
func songSummary(name string) (summary, body string) {
	artist, title, ok := strings.Cut(name, " - ")
	if !ok || artist == "" || title == "" {
		return "Now playing", name
	}
	return title, artist
}
