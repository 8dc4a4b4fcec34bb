package pedometer

import (
	"math"
	"sync/atomic"
)

// GraphWidth is the length of the pace history ring, one byte per
// second of displayed pace.
const GraphWidth = 90

// Pace limits: displayed pace is clamped to [0, PaceMax] and snaps to
// zero below PaceSnap.
const (
	PaceMax      = 100.0
	PaceSnap     = 0.5
	paceSlewStep = 2.0
)

// Pace tracks the raw steps-per-minute rate (tick-written) and a
// slew-limited displayed value (foreground-owned) that never overshoots
// its target.
type Pace struct {
	// raw holds float32 bits so the cross-context field stays a
	// single word.
	raw atomic.Uint32

	displayed float64
	history   [GraphWidth]byte
}

// SetRaw stores the raw pace. Tick context only.
func (p *Pace) SetRaw(v float64) {
	p.raw.Store(math.Float32bits(float32(v)))
}

// Raw returns the last raw pace written by the timebase.
func (p *Pace) Raw() float64 {
	return float64(math.Float32frombits(p.raw.Load()))
}

// Update moves the displayed pace toward the raw target by at most
// paceSlewStep, clamps to [0, PaceMax], and snaps small values to zero.
// Foreground context only.
func (p *Pace) Update() {
	target := p.Raw()
	switch {
	case p.displayed < target:
		p.displayed += paceSlewStep
		if p.displayed > target {
			p.displayed = target
		}
	case p.displayed > target:
		p.displayed -= paceSlewStep
		if p.displayed < target {
			p.displayed = target
		}
	}

	if p.displayed < PaceSnap {
		p.displayed = 0
	} else if p.displayed > PaceMax {
		p.displayed = PaceMax
	}
}

// Displayed returns the current smoothed pace.
func (p *Pace) Displayed() float64 {
	return p.displayed
}

// Record writes the displayed pace into the history ring at the slot
// for the given elapsed second. Foreground context only.
func (p *Pace) Record(elapsedSeconds uint32) {
	p.history[elapsedSeconds%GraphWidth] = byte(p.displayed)
}

// History returns a copy of the pace history ring.
func (p *Pace) History() []byte {
	out := make([]byte, GraphWidth)
	copy(out, p.history[:])
	return out
}
