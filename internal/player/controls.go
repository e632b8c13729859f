package player

import "github.com/gopxl/beep/v2/speaker"

// SetGain changes the linear gain of the current item without interrupting it.
func (p *Player) SetGain(gain float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gain == nil {
		return
	}
	speaker.Lock()
	p.gain.Gain = gainOffset(gain)
	speaker.Unlock()
}

// Pause pauses output. The paused state carries over to the next item.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPausedLocked(true)
}

// Resume resumes paused output.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPausedLocked(false)
}

// Toggle toggles between playing and paused.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPausedLocked(!p.paused)
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// setPausedLocked must be called with p.mu held.
func (p *Player) setPausedLocked(paused bool) {
	p.paused = paused
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}
