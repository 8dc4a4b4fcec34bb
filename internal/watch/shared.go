// Package watch coordinates the two execution contexts: the 1 Hz
// timebase tick and the ~20 ms foreground loop. All state crossing
// that boundary lives in Shared as single-word atomics; the calendar
// time is packed into one uint64 so it can never be read torn.
package watch

import (
	"sync/atomic"

	"github.com/sweeney/stepwatch/internal/clock"
)

// Shared is the single explicitly-owned record shared by the tick
// handler and the foreground loop.
//
// Access rules per field:
//   - clk: tick advances it; foreground reads it and commits edits
//     (both sides use CAS so neither update is lost).
//   - elapsed, blink: tick writes, foreground reads.
//   - menuRequested: tick sets, foreground consumes.
//   - inMenu: foreground writes, tick reads.
type Shared struct {
	clk           atomic.Uint64
	elapsed       atomic.Uint32
	blink         atomic.Bool
	menuRequested atomic.Bool
	inMenu        atomic.Bool
}

// NewShared creates the shared record reset to boot defaults.
func NewShared() *Shared {
	s := &Shared{}
	s.clk.Store(clock.Boot.Pack())
	return s
}

// Clock returns the current calendar time.
func (s *Shared) Clock() clock.Time {
	return clock.Unpack(s.clk.Load())
}

// advanceClock moves the clock forward one second. Tick context only.
func (s *Shared) advanceClock() {
	for {
		old := s.clk.Load()
		next := clock.Unpack(old).Advance().Pack()
		if s.clk.CompareAndSwap(old, next) {
			return
		}
	}
}

// CommitTime applies a confirmed time edit, zeroing the seconds. The
// CAS loop keeps a concurrent tick from being lost.
func (s *Shared) CommitTime(hours, minutes uint8) {
	for {
		old := s.clk.Load()
		t := clock.Unpack(old)
		t.Hours = hours
		t.Minutes = minutes
		t.Seconds = 0
		if s.clk.CompareAndSwap(old, t.Pack()) {
			return
		}
	}
}

// CommitDate applies a confirmed date edit.
func (s *Shared) CommitDate(day, month uint8) {
	for {
		old := s.clk.Load()
		t := clock.Unpack(old)
		t.Day = day
		t.Month = month
		if s.clk.CompareAndSwap(old, t.Pack()) {
			return
		}
	}
}

// Elapsed returns seconds since boot.
func (s *Shared) Elapsed() uint32 {
	return s.elapsed.Load()
}

// Blink returns the 1 Hz animation flag.
func (s *Shared) Blink() bool {
	return s.blink.Load()
}

// SetInMenu records whether the foreground is in menu mode.
func (s *Shared) SetInMenu(v bool) {
	s.inMenu.Store(v)
}

// InMenu reports whether the foreground is in menu mode.
func (s *Shared) InMenu() bool {
	return s.inMenu.Load()
}

// TakeMenuRequest consumes a pending menu-entry request.
func (s *Shared) TakeMenuRequest() bool {
	return s.menuRequested.CompareAndSwap(true, false)
}
