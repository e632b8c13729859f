package player

import (
	"sync"
	"testing"
)

func TestPlayer_ConcurrentClose(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &Player{sampleRate: 44100}
			if err := p.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		}()
	}
	wg.Wait()

	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		t.Error("speaker reported initialized after Close")
	}
}

func TestPlayer_StateWithoutItem(t *testing.T) {
	p := &Player{sampleRate: 44100}

	if got := p.State(); got != Stopped {
		t.Errorf("State() = %v, want Stopped", got)
	}
	p.Pause()
	if got := p.State(); got.IsActive() {
		t.Errorf("State() after Pause with no item = %v, want inactive", got)
	}
	if !p.IsPaused() {
		t.Error("pause should be kept for the next item")
	}
}
