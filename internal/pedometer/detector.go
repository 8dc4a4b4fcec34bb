// Package pedometer turns accelerometer magnitudes into a step count
// and a smoothed pace suitable for display and graphing.
//
// The detector's counters cross the tick/foreground boundary: the
// foreground loop feeds samples and increments the totals, the 1 Hz
// timebase rotates the per-second bucket and derives the pace. All
// cross-boundary fields are single-word atomics.
package pedometer

import (
	"math"
	"sync/atomic"

	"github.com/sweeney/stepwatch/internal/accel"
)

// HistorySize is the length of the per-second step bucket ring.
const HistorySize = 60

// DefaultThreshold is the dynamic-force threshold for the watch.
// The standalone counter mode uses CounterThreshold instead; the two
// values come from different field tunings and are deliberately kept
// as separate defaults.
const (
	DefaultThreshold = 900.0
	CounterThreshold = 200.0
)

// Detector counts steps with a single-pole edge detector: a maximal run
// of samples at or above threshold counts as exactly one step.
type Detector struct {
	threshold float64

	// wasAbove is the edge detector's only persistent state. It is
	// foreground-owned and must never be reset after initialization,
	// or steps double-count.
	wasAbove bool
	moving   bool

	total  atomic.Uint32
	second atomic.Uint32
	bucket [HistorySize]atomic.Uint32
}

// NewDetector creates a detector with the given force threshold.
func NewDetector(threshold float64) *Detector {
	return &Detector{threshold: threshold}
}

// Feed processes one magnitude reading and reports whether it produced
// a step (a rising edge through the threshold). Foreground context only.
func (d *Detector) Feed(magnitude float64) bool {
	dynamicForce := math.Abs(magnitude - accel.GravityBaseline)
	above := dynamicForce > d.threshold
	d.moving = above

	stepped := above && !d.wasAbove
	if stepped {
		d.total.Add(1)
		d.bucket[d.second.Load()%HistorySize].Add(1)
	}
	d.wasAbove = above
	return stepped
}

// Moving reports whether the most recent sample was above threshold.
func (d *Detector) Moving() bool {
	return d.moving
}

// Total returns the step count since boot.
func (d *Detector) Total() uint32 {
	return d.total.Load()
}

// RotateSecond advances the bucket ring to the next second and zeroes
// the new slot. Tick context only.
func (d *Detector) RotateSecond() {
	next := (d.second.Load() + 1) % HistorySize
	d.bucket[next].Store(0)
	d.second.Store(next)
}
