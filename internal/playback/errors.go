package playback

import "errors"

var (
	// ErrEmptyPlaylist is returned by Run when there is nothing to play.
	ErrEmptyPlaylist = errors.New("playlist is empty")

	// ErrStreamSetup wraps a failure to open the audio output device.
	ErrStreamSetup = errors.New("unable to open audio output")

	// ErrControlsCrashed is returned when the control handler panicked.
	ErrControlsCrashed = errors.New("controls crashed")

	// ErrPlaybackAborted is returned when a control component failed during
	// the session, even if every song was played.
	ErrPlaybackAborted = errors.New("playback aborted")
)
