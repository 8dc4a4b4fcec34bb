// Package menu is the watch's hierarchical menu state machine. It is
// pure: the foreground loop feeds it one Input per poll and applies the
// returned Result (redraws, clock commits) itself.
package menu

import (
	"github.com/sweeney/stepwatch/internal/clock"
	"github.com/sweeney/stepwatch/internal/input"
)

// State is the active screen.
type State int

const (
	StateClock State = iota
	StateMain
	StateFormat
	StateSetTime
	StateSetDate
	StateGraph
)

func (s State) String() string {
	switch s {
	case StateClock:
		return "CLOCK"
	case StateMain:
		return "MAIN_MENU"
	case StateFormat:
		return "TIME_FORMAT"
	case StateSetTime:
		return "SET_TIME"
	case StateSetDate:
		return "SET_DATE"
	case StateGraph:
		return "GRAPH"
	default:
		return "UNKNOWN"
	}
}

const (
	// ItemCount is the number of main menu rows.
	ItemCount = 5

	// graphExitHoldPolls is the button-1 hold that drops from the
	// graph straight back to the clock.
	graphExitHoldPolls = 20

	// levelConfirmPolls is the held-flat streak that commits an edit.
	// One poll above the tilt threshold resets the streak.
	levelConfirmPolls = 3
)

// Main menu cursor positions.
const (
	itemGraph = iota
	itemFormat
	itemSetTime
	itemSetDate
	itemExit
)

// Input is one foreground poll's worth of gesture state.
type Input struct {
	Event input.Event

	// Hold1Polls is how long button 1 has been held, for the graph's
	// long-press exit.
	Hold1Polls int

	// Level is true when the device is held flat. Only sampled while
	// an edit page is active.
	Level bool
}

// Result tells the foreground loop what the step changed.
type Result struct {
	// Redraw is set when the active screen's content changed.
	Redraw bool

	// ExitToClock is set when the machine returned to the clock face;
	// the caller must force a full clock redraw.
	ExitToClock bool

	// CommitTime is set when a staged time edit was confirmed; apply
	// Hours/Minutes from Draft and zero the seconds.
	CommitTime bool

	// CommitDate is set when a staged date edit was confirmed; apply
	// Day/Month from Draft.
	CommitDate bool
}

// Machine runs indefinitely; StateClock is both the initial and the
// resting state.
type Machine struct {
	state     State
	selection int
	use12Hour bool

	formatOption int

	draft       clock.Time
	timeField   int // 0 = hours, 1 = minutes
	dateField   int // 0 = day, 1 = month
	levelStreak int

	// graphArmed gates the graph's long-press exit until button 1 has
	// been seen released after entry; otherwise the hold that is still
	// in progress from the opening combo would count toward it.
	graphArmed bool
}

// NewMachine creates a machine resting on the clock face in 12-hour
// format.
func NewMachine() *Machine {
	return &Machine{state: StateClock, use12Hour: true}
}

// State returns the active screen.
func (m *Machine) State() State { return m.state }

// Selection returns the main menu cursor row.
func (m *Machine) Selection() int { return m.selection }

// Use12Hour reports the committed time format.
func (m *Machine) Use12Hour() bool { return m.use12Hour }

// FormatOption returns the staged chooser row (0 = 12H, 1 = 24H).
func (m *Machine) FormatOption() int { return m.formatOption }

// Draft returns the staged time/date edits.
func (m *Machine) Draft() clock.Time { return m.draft }

// TimeField returns the selected set-time field.
func (m *Machine) TimeField() int { return m.timeField }

// DateField returns the selected set-date field.
func (m *Machine) DateField() int { return m.dateField }

// Editing reports whether an edit page (which samples the confirm
// gesture) is active.
func (m *Machine) Editing() bool {
	return m.state == StateSetTime || m.state == StateSetDate
}

// EnterMainMenu services the timebase's menu-entry request: jump from
// the clock face to the main menu with the cursor on the first row.
func (m *Machine) EnterMainMenu() {
	m.state = StateMain
	m.selection = 0
}

// Step advances the machine by one foreground poll. now is the current
// clock value, used to stage edit drafts.
func (m *Machine) Step(in Input, now clock.Time) Result {
	switch m.state {
	case StateMain:
		return m.stepMain(in, now)
	case StateFormat:
		return m.stepFormat(in)
	case StateSetTime:
		return m.stepSetTime(in)
	case StateSetDate:
		return m.stepSetDate(in)
	case StateGraph:
		return m.stepGraph(in)
	default:
		return Result{}
	}
}

func (m *Machine) stepMain(in Input, now clock.Time) Result {
	switch in.Event {
	case input.EventButton1:
		if m.selection == 0 {
			m.selection = ItemCount - 1
		} else {
			m.selection--
		}
		return Result{Redraw: true}
	case input.EventButton2:
		if m.selection == ItemCount-1 {
			m.selection = 0
		} else {
			m.selection++
		}
		return Result{Redraw: true}
	case input.EventCombo:
		return m.confirmSelection(now)
	}
	return Result{}
}

func (m *Machine) confirmSelection(now clock.Time) Result {
	switch m.selection {
	case itemGraph:
		m.state = StateGraph
		m.graphArmed = false
		return Result{Redraw: true}
	case itemFormat:
		m.state = StateFormat
		m.formatOption = 0
		if !m.use12Hour {
			m.formatOption = 1
		}
		return Result{Redraw: true}
	case itemSetTime:
		m.state = StateSetTime
		m.draft = now
		m.timeField = 0
		m.levelStreak = 0
		return Result{Redraw: true}
	case itemSetDate:
		m.state = StateSetDate
		m.draft = now
		m.dateField = 0
		m.levelStreak = 0
		return Result{Redraw: true}
	case itemExit:
		m.state = StateClock
		return Result{ExitToClock: true}
	}
	return Result{}
}

func (m *Machine) stepFormat(in Input) Result {
	switch in.Event {
	case input.EventButton2:
		m.formatOption = (m.formatOption + 1) % 2
		return Result{Redraw: true}
	case input.EventButton1:
		m.use12Hour = m.formatOption == 0
		m.state = StateMain
		return Result{Redraw: true}
	}
	return Result{}
}

func (m *Machine) stepSetTime(in Input) Result {
	res := Result{}
	switch in.Event {
	case input.EventCombo:
		m.timeField ^= 1
		res.Redraw = true
	case input.EventButton1:
		if m.timeField == 0 {
			m.draft.Hours = (m.draft.Hours + 1) % 24
		} else {
			m.draft.Minutes = (m.draft.Minutes + 1) % 60
		}
		res.Redraw = true
	case input.EventButton2:
		if m.timeField == 0 {
			if m.draft.Hours == 0 {
				m.draft.Hours = 23
			} else {
				m.draft.Hours--
			}
		} else {
			if m.draft.Minutes == 0 {
				m.draft.Minutes = 59
			} else {
				m.draft.Minutes--
			}
		}
		res.Redraw = true
	}

	if m.confirmLevel(in.Level) {
		res.CommitTime = true
		m.state = StateMain
		res.Redraw = true
	}
	return res
}

func (m *Machine) stepSetDate(in Input) Result {
	res := Result{}
	switch in.Event {
	case input.EventCombo:
		m.dateField ^= 1
		res.Redraw = true
	case input.EventButton1:
		if m.dateField == 0 {
			m.draft.Day = m.draft.Day%clock.DaysIn(m.draft.Month) + 1
		} else {
			m.draft.Month = m.draft.Month%12 + 1
			m.clampDraftDay()
		}
		res.Redraw = true
	case input.EventButton2:
		if m.dateField == 0 {
			if m.draft.Day == 1 {
				m.draft.Day = clock.DaysIn(m.draft.Month)
			} else {
				m.draft.Day--
			}
		} else {
			if m.draft.Month == 1 {
				m.draft.Month = 12
			} else {
				m.draft.Month--
			}
			m.clampDraftDay()
		}
		res.Redraw = true
	}

	if m.confirmLevel(in.Level) {
		res.CommitDate = true
		m.state = StateMain
		res.Redraw = true
	}
	return res
}

// clampDraftDay pulls an out-of-range staged day down to the new
// month's last day.
func (m *Machine) clampDraftDay() {
	if max := clock.DaysIn(m.draft.Month); m.draft.Day > max {
		m.draft.Day = max
	}
}

// confirmLevel accumulates the held-flat streak; any tilted poll resets
// it to zero before it re-accumulates.
func (m *Machine) confirmLevel(level bool) bool {
	if !level {
		m.levelStreak = 0
		return false
	}
	m.levelStreak++
	if m.levelStreak >= levelConfirmPolls {
		m.levelStreak = 0
		return true
	}
	return false
}

func (m *Machine) stepGraph(in Input) Result {
	if in.Event == input.EventButton2 {
		m.state = StateMain
		return Result{Redraw: true}
	}
	if !m.graphArmed {
		if in.Hold1Polls == 0 {
			m.graphArmed = true
		}
		return Result{}
	}
	if in.Hold1Polls >= graphExitHoldPolls {
		m.state = StateClock
		return Result{ExitToClock: true}
	}
	return Result{}
}
