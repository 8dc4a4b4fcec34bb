package watch

import (
	"github.com/sweeney/stepwatch/internal/pedometer"
)

const (
	// menuEntryTicks is the sustained button-1 hold, in ticks, that
	// requests menu entry from the clock face.
	menuEntryTicks = 2

	// inactivityTicks is how many consecutive zero-step seconds force
	// the raw pace to zero.
	inactivityTicks = 3
)

// HoldReader exposes the debounced button-1 state to the tick context.
// *input.Manager satisfies it.
type HoldReader interface {
	Held1() bool
}

// TimeBase is the periodic tick handler. Tick must return quickly,
// never blocks, and never touches the display; it only updates shared
// state for the foreground loop to render.
type TimeBase struct {
	shared  *Shared
	det     *pedometer.Detector
	pace    *pedometer.Pace
	buttons HoldReader

	prevTotal  uint32
	inactivity int
	holdTicks  int
	menuFired  bool
}

// NewTimeBase wires the tick handler to its shared state.
func NewTimeBase(shared *Shared, det *pedometer.Detector, pace *pedometer.Pace, buttons HoldReader) *TimeBase {
	return &TimeBase{shared: shared, det: det, pace: pace, buttons: buttons}
}

// Tick advances one second: clock rollover, step-bucket rotation, raw
// pace derivation, blink toggle, and the menu-entry hold sample.
func (tb *TimeBase) Tick() {
	tb.shared.advanceClock()
	tb.shared.elapsed.Add(1)
	tb.shared.blink.Store(!tb.shared.blink.Load())

	inMenu := tb.shared.InMenu()

	// Menu entry on sustained hold, fired once per hold.
	if !inMenu {
		if tb.buttons != nil && tb.buttons.Held1() {
			tb.holdTicks++
			if tb.holdTicks >= menuEntryTicks && !tb.menuFired {
				tb.shared.menuRequested.Store(true)
				tb.menuFired = true
			}
		} else {
			tb.holdTicks = 0
			tb.menuFired = false
		}
	}

	if inMenu {
		return
	}

	tb.det.RotateSecond()

	total := tb.det.Total()
	stepsThisSecond := total - tb.prevTotal
	tb.prevTotal = total

	rawPace := float64(stepsThisSecond) * 60.0
	if stepsThisSecond == 0 {
		tb.inactivity++
		if tb.inactivity < inactivityTicks {
			// A brief pause keeps the last rate; only sustained
			// inactivity zeroes it.
			rawPace = tb.pace.Raw()
		}
	} else {
		tb.inactivity = 0
	}
	tb.pace.SetRaw(rawPace)
}
