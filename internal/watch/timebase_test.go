package watch

import (
	"testing"

	"github.com/sweeney/stepwatch/internal/accel"
	"github.com/sweeney/stepwatch/internal/pedometer"
)

type fakeHold struct{ held bool }

func (f *fakeHold) Held1() bool { return f.held }

func newTimeBaseFixture() (*TimeBase, *Shared, *pedometer.Detector, *pedometer.Pace, *fakeHold) {
	shared := NewShared()
	det := pedometer.NewDetector(pedometer.DefaultThreshold)
	pace := &pedometer.Pace{}
	hold := &fakeHold{}
	return NewTimeBase(shared, det, pace, hold), shared, det, pace, hold
}

func feedSteps(det *pedometer.Detector, n int) {
	for i := 0; i < n; i++ {
		det.Feed(accel.GravityBaseline + pedometer.DefaultThreshold + 100)
		det.Feed(accel.GravityBaseline)
	}
}

func TestTickAdvancesClockAndElapsed(t *testing.T) {
	tb, shared, _, _, _ := newTimeBaseFixture()
	tb.Tick()
	if got := shared.Clock().Seconds; got != 1 {
		t.Errorf("seconds = %d, want 1", got)
	}
	if got := shared.Elapsed(); got != 1 {
		t.Errorf("Elapsed = %d, want 1", got)
	}
}

func TestTickTogglesBlink(t *testing.T) {
	tb, shared, _, _, _ := newTimeBaseFixture()
	tb.Tick()
	if !shared.Blink() {
		t.Error("blink should toggle on")
	}
	tb.Tick()
	if shared.Blink() {
		t.Error("blink should toggle off")
	}
}

func TestTickDerivesPaceFromStepDelta(t *testing.T) {
	tb, _, det, pace, _ := newTimeBaseFixture()

	feedSteps(det, 2)
	tb.Tick()
	if got := pace.Raw(); got != 120 {
		t.Errorf("Raw = %v, want 120 (2 steps * 60)", got)
	}

	feedSteps(det, 1)
	tb.Tick()
	if got := pace.Raw(); got != 60 {
		t.Errorf("Raw = %v, want 60", got)
	}
}

func TestBriefPauseHoldsPace(t *testing.T) {
	tb, _, det, pace, _ := newTimeBaseFixture()

	feedSteps(det, 2)
	tb.Tick()

	// Two idle seconds keep the last rate.
	tb.Tick()
	tb.Tick()
	if got := pace.Raw(); got != 120 {
		t.Errorf("Raw after brief pause = %v, want 120", got)
	}

	// The third idle second zeroes it.
	tb.Tick()
	if got := pace.Raw(); got != 0 {
		t.Errorf("Raw after sustained pause = %v, want 0", got)
	}
}

func TestStepResetsInactivity(t *testing.T) {
	tb, _, det, pace, _ := newTimeBaseFixture()

	feedSteps(det, 1)
	tb.Tick()
	tb.Tick()
	tb.Tick()
	feedSteps(det, 1)
	tb.Tick()
	// Two more idle ticks: the counter restarted, pace must hold.
	tb.Tick()
	tb.Tick()
	if got := pace.Raw(); got != 60 {
		t.Errorf("Raw = %v, want 60", got)
	}
}

func TestMenuRequestAfterSustainedHold(t *testing.T) {
	tb, shared, _, _, hold := newTimeBaseFixture()

	hold.held = true
	tb.Tick()
	if shared.TakeMenuRequest() {
		t.Fatal("one held tick must not request the menu")
	}
	tb.Tick()
	if !shared.TakeMenuRequest() {
		t.Fatal("two held ticks should request the menu")
	}

	// Continued hold fires no second request.
	tb.Tick()
	tb.Tick()
	if shared.TakeMenuRequest() {
		t.Error("request should fire once per hold")
	}

	// Release re-arms.
	hold.held = false
	tb.Tick()
	hold.held = true
	tb.Tick()
	tb.Tick()
	if !shared.TakeMenuRequest() {
		t.Error("a new hold should request again")
	}
}

func TestTickInMenuSkipsPedometer(t *testing.T) {
	tb, shared, det, pace, _ := newTimeBaseFixture()
	shared.SetInMenu(true)

	feedSteps(det, 2)
	pace.SetRaw(99)
	tb.Tick()

	if got := pace.Raw(); got != 99 {
		t.Errorf("Raw = %v, want 99 (menu tick must not touch pace)", got)
	}
	if got := shared.Clock().Seconds; got != 1 {
		t.Errorf("seconds = %d, want 1 (clock still ticks in menu)", got)
	}
}

func TestNoMenuRequestWhileInMenu(t *testing.T) {
	tb, shared, _, _, hold := newTimeBaseFixture()
	shared.SetInMenu(true)
	hold.held = true
	tb.Tick()
	tb.Tick()
	tb.Tick()
	if shared.TakeMenuRequest() {
		t.Error("menu entry hold is ignored while already in the menu")
	}
}
