// Package clock provides pure date/time arithmetic for the watch.
// This package has NO external dependencies and no notion of real time;
// advancing the clock is an explicit operation driven by the timebase.
package clock

// Time is the watch's calendar time. Day never exceeds the month's day
// count; there is no year and no leap-year handling.
type Time struct {
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
	Day     uint8 // 1-DaysIn(Month)
	Month   uint8 // 1-12
}

var daysPerMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Boot is the time the watch resets to on power-up.
var Boot = Time{Hours: 4, Minutes: 0, Seconds: 0, Day: 24, Month: 1}

// DaysIn returns the number of days in the given month (1-12).
func DaysIn(month uint8) uint8 {
	if month < 1 || month > 12 {
		return 31
	}
	return daysPerMonth[month-1]
}

// Advance returns t moved forward by one second, propagating
// minute/hour/day/month rollover.
func (t Time) Advance() Time {
	t.Seconds++
	if t.Seconds >= 60 {
		t.Seconds = 0
		t.Minutes++
	}
	if t.Minutes >= 60 {
		t.Minutes = 0
		t.Hours++
	}
	if t.Hours >= 24 {
		t.Hours = 0
		t = t.NextDay()
	}
	return t
}

// NextDay returns t with the day advanced by one, rolling into the next
// month (and wrapping December into January) as needed.
func (t Time) NextDay() Time {
	t.Day++
	if t.Day > DaysIn(t.Month) {
		t.Day = 1
		t.Month++
		if t.Month > 12 {
			t.Month = 1
		}
	}
	return t
}

// Clock12 returns the hour as displayed in 12-hour format and whether it
// is PM. Midnight displays as 12.
func (t Time) Clock12() (hour uint8, pm bool) {
	hour = t.Hours
	if hour == 0 {
		return 12, false
	}
	if hour >= 12 {
		pm = true
		if hour > 12 {
			hour -= 12
		}
	}
	return hour, pm
}

// Pack encodes t into a single word so it can be shared across the
// tick/foreground boundary with one atomic access.
func (t Time) Pack() uint64 {
	return uint64(t.Hours) |
		uint64(t.Minutes)<<8 |
		uint64(t.Seconds)<<16 |
		uint64(t.Day)<<24 |
		uint64(t.Month)<<32
}

// Unpack decodes a value produced by Pack.
func Unpack(v uint64) Time {
	return Time{
		Hours:   uint8(v),
		Minutes: uint8(v >> 8),
		Seconds: uint8(v >> 16),
		Day:     uint8(v >> 24),
		Month:   uint8(v >> 32),
	}
}
