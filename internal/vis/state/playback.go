package state

import "time"

// Playback tracks the scrubber position while animating the gait.
type Playback struct {
	CurrentTime float64
	MaxTime     float64
	Speed       float64
	Playing     bool
	lastUpdate  time.Time
}

// NewPlayback creates a paused playback spanning [0, maxTime].
func NewPlayback(maxTime float64) *Playback {
	return &Playback{
		MaxTime:    maxTime,
		Speed:      0.5, // gaits are fast; half speed by default
		lastUpdate: time.Now(),
	}
}

// TogglePlay starts or pauses playback, wrapping around at the end.
func (p *Playback) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Reset rewinds to the start and pauses.
func (p *Playback) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the playhead by the wall-clock time since the last call.
func (p *Playback) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.CurrentTime += now.Sub(p.lastUpdate).Seconds() * p.Speed
	p.lastUpdate = now

	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime moves the playhead, clamped to the horizon.
func (p *Playback) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// Step nudges the playhead by a signed fraction of the horizon.
func (p *Playback) Step(direction int) {
	p.Playing = false
	step := p.MaxTime / 50
	p.SetTime(p.CurrentTime + float64(direction)*step)
}

// Progress returns the playhead position as a 0-1 fraction.
func (p *Playback) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
