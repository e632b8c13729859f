package player

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// resampleQuality is the interpolation quality used when a track's sample
// rate differs from the speaker's.
const resampleQuality = 4

// ErrNoSource is returned by Play when called without an opened source.
var ErrNoSource = errors.New("no audio source")

// Source is an opened and decoded audio file, ready to be played once.
type Source struct {
	Path     string
	Codec    Codec
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	// clears is the player's clear count when Open started.
	clears uint64
}

// Format returns the decoded stream format.
func (s *Source) Format() beep.Format { return s.format }

// Close releases the decoder and the underlying file.
func (s *Source) Close() error {
	var errs []error
	if s.streamer != nil {
		errs = append(errs, s.streamer.Close())
		s.streamer = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
		s.file = nil
	}
	return errors.Join(errs...)
}

type Player struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	ctrl       *beep.Ctrl
	gain       *effects.Gain
	paused     bool
	finish     func()

	// clears counts Clear calls. A source opened before the latest Clear is
	// skipped by Play, so a skip issued while a song is being opened holds.
	clears uint64
}

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

// New initializes the audio output at the given sample rate. The speaker is
// shared process-wide and only initialized once.
func New(sampleRate int, buffer time.Duration) (*Player, error) {
	sr := beep.SampleRate(sampleRate)

	speakerMu.Lock()
	defer speakerMu.Unlock()
	if !speakerInitialized {
		if err := speaker.Init(sr, sr.N(buffer)); err != nil {
			return nil, fmt.Errorf("initialize audio output: %w", err)
		}
		speakerInitialized = true
	}
	return &Player{sampleRate: sr}, nil
}

// Open decodes the file at path. It returns ErrUnrecognizedFormat when the
// content is not a supported audio format.
func (p *Player) Open(path string) (*Source, error) {
	p.mu.Lock()
	clears := p.clears
	p.mu.Unlock()

	src, err := open(path)
	if err != nil {
		return nil, err
	}
	src.clears = clears
	return src, nil
}

// Play streams src with the given linear gain and blocks until the item
// finishes or is cleared. It returns at once when Clear was called after src
// was opened. The source is closed before returning.
func (p *Player) Play(src *Source, gain float64) error {
	if src == nil || src.streamer == nil {
		return ErrNoSource
	}
	defer src.Close()

	var s beep.Streamer = src.streamer
	if src.format.SampleRate != p.sampleRate {
		s = beep.Resample(resampleQuality, src.format.SampleRate, p.sampleRate, s)
	}

	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }

	p.mu.Lock()
	if p.clears != src.clears {
		p.mu.Unlock()
		return nil
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: p.paused}
	p.gain = &effects.Gain{Streamer: p.ctrl, Gain: gainOffset(gain)}
	p.finish = finish
	speaker.Play(beep.Seq(p.gain, beep.Callback(finish)))
	p.mu.Unlock()

	<-done

	p.mu.Lock()
	p.ctrl = nil
	p.gain = nil
	p.finish = nil
	p.mu.Unlock()

	return src.streamer.Err()
}

// Clear drops the current item so a blocked Play returns. Playback is
// unpaused so the next item starts audibly.
func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	speaker.Clear()
	p.paused = false
	p.clears++
	if p.finish != nil {
		p.finish()
	}
}

// Close stops all output and releases the audio device.
func (p *Player) Close() error {
	p.Clear()

	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		speaker.Close()
		speakerInitialized = false
	}
	return nil
}

// State reports whether an item is loaded and whether it is paused.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.ctrl == nil:
		return Stopped
	case p.paused:
		return Paused
	default:
		return Playing
	}
}

// gainOffset converts a linear multiplier to effects.Gain, which scales
// samples by 1+Gain.
func gainOffset(gain float64) float64 {
	if gain < 0 {
		gain = 0
	}
	return gain - 1
}
