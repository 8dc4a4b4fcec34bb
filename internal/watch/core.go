package watch

import (
	"fmt"
	"log"

	"github.com/sweeney/stepwatch/internal/accel"
	"github.com/sweeney/stepwatch/internal/clock"
	"github.com/sweeney/stepwatch/internal/display"
	"github.com/sweeney/stepwatch/internal/input"
	"github.com/sweeney/stepwatch/internal/menu"
	"github.com/sweeney/stepwatch/internal/pedometer"
)

// FatalError marks an unrecoverable device failure. The diagnostic has
// already been rendered; the only recovery is a power cycle.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal device error (%s): %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Core is the foreground loop body. Step is called once per poll
// period (~20 ms); it never sleeps and the only blocking it tolerates
// is in the collaborators it calls.
type Core struct {
	shared  *Shared
	lines   input.Lines
	leds    input.Indicators
	mgr     *input.Manager
	sampler accel.Sampler
	det     *pedometer.Detector
	pace    *pedometer.Pace
	machine *menu.Machine
	r       *display.Renderer
}

// NewCore wires the foreground loop.
func NewCore(shared *Shared, lines input.Lines, leds input.Indicators, mgr *input.Manager,
	sampler accel.Sampler, det *pedometer.Detector, pace *pedometer.Pace, r *display.Renderer) *Core {
	return &Core{
		shared:  shared,
		lines:   lines,
		leds:    leds,
		mgr:     mgr,
		sampler: sampler,
		det:     det,
		pace:    pace,
		machine: menu.NewMachine(),
		r:       r,
	}
}

// Machine exposes the menu state machine for status reporting.
func (c *Core) Machine() *menu.Machine { return c.machine }

// Step runs one foreground iteration. A returned *FatalError means the
// watch is halted; anything else is recoverable.
func (c *Core) Step() error {
	raw1, raw2, err := c.lines.Read()
	if err != nil {
		log.Printf("button read error: %v", err)
		return nil
	}
	ev := c.mgr.Poll(raw1, raw2)

	// Indicator outputs mirror held buttons. Pure feedback.
	c.leds.Set(c.mgr.Held1(), c.mgr.Held2())

	now := c.shared.Clock()

	// Service the timebase's menu-entry request.
	if c.shared.TakeMenuRequest() && c.machine.State() == menu.StateClock {
		c.machine.EnterMainMenu()
		c.shared.SetInMenu(true)
		c.r.MainMenu(c.machine.Selection(), now, c.machine.Use12Hour())
		return nil
	}

	if c.machine.State() == menu.StateClock {
		return c.stepClockFace(now)
	}
	return c.stepMenu(ev, now)
}

// stepClockFace samples motion and renders the home screen.
func (c *Core) stepClockFace(now clock.Time) error {
	sample, err := c.sampler.ReadSample()
	if err != nil {
		return c.halt("SENSOR READ FAIL", err)
	}
	c.det.Feed(sample.Magnitude())

	c.pace.Update()
	c.pace.Record(c.shared.Elapsed())

	c.r.ClockFace(now, c.machine.Use12Hour(), c.pace.Displayed(), c.shared.Blink())
	return nil
}

// stepMenu drives the state machine and renders whatever changed.
func (c *Core) stepMenu(ev input.Event, now clock.Time) error {
	level := false
	if c.machine.Editing() {
		sample, err := c.sampler.ReadSample()
		if err != nil {
			return c.halt("SENSOR READ FAIL", err)
		}
		level = accel.IsLevel(sample.Magnitude())
	}

	res := c.machine.Step(menu.Input{
		Event:      ev,
		Hold1Polls: c.mgr.Hold1Polls(),
		Level:      level,
	}, now)

	if res.CommitTime {
		d := c.machine.Draft()
		c.shared.CommitTime(d.Hours, d.Minutes)
		log.Printf("time set to %02d:%02d", d.Hours, d.Minutes)
	}
	if res.CommitDate {
		d := c.machine.Draft()
		c.shared.CommitDate(d.Day, d.Month)
		log.Printf("date set to %02d/%02d", d.Day, d.Month)
	}

	if res.ExitToClock {
		c.shared.SetInMenu(false)
		c.r.Clear()
		return nil
	}

	if res.Redraw {
		c.render(c.shared.Clock())
	} else if c.machine.State() == menu.StateMain {
		// Only the clock strip ticks while the menu is idle.
		c.r.MenuClock(c.shared.Clock(), c.machine.Use12Hour())
	}
	return nil
}

func (c *Core) render(now clock.Time) {
	switch c.machine.State() {
	case menu.StateMain:
		c.r.MainMenu(c.machine.Selection(), now, c.machine.Use12Hour())
	case menu.StateFormat:
		c.r.FormatMenu(c.machine.FormatOption())
	case menu.StateSetTime:
		c.r.SetTime(c.machine.Draft(), c.machine.TimeField())
	case menu.StateSetDate:
		c.r.SetDate(c.machine.Draft(), c.machine.DateField())
	case menu.StateGraph:
		c.r.Graph(c.pace.History())
	}
}

// StepCounter runs one iteration of the degenerate counter-only mode:
// same sampler and detector, no clock, no menu.
func (c *Core) StepCounter() error {
	sample, err := c.sampler.ReadSample()
	if err != nil {
		return c.halt("SENSOR READ FAIL", err)
	}
	c.det.Feed(sample.Magnitude())
	c.r.StepCounter(c.det.Total(), sample.X, sample.Y, sample.Z)
	return nil
}

// halt renders the diagnostic and returns the fatal error. The caller
// must stop the loop; the watch is unrecoverable until power cycle.
func (c *Core) halt(msg string, err error) error {
	c.r.Fatal(msg)
	return &FatalError{Op: msg, Err: err}
}
