// Package input debounces the watch's two buttons into logical events.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
//
// Debounce is tick-counted rather than blocking: each foreground poll
// advances a per-button state machine, so display refresh and step
// sampling stay responsive while a button is held.
package input

import "sync/atomic"

// Lines reads the two button lines. Implementations return logical
// pressed states (raw active-low already inverted).
type Lines interface {
	// Read returns (button1Pressed, button2Pressed, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Indicators drives the two LED outputs that mirror held buttons.
// Pure feedback; no logic depends on them.
type Indicators interface {
	Set(led1, led2 bool)
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton1 = 11
	DefaultPinButton2 = 12
	DefaultPinLED1    = 8
	DefaultPinLED2    = 9
)

// Event is a recognized logical gesture.
type Event int

const (
	EventNone Event = iota
	// EventButton1 fires once on the debounced press edge of button 1.
	EventButton1
	// EventButton2 fires once on the debounced press edge of button 2.
	EventButton2
	// EventCombo fires once after both buttons are held together for
	// comboPolls consecutive polls. Combo takes priority over singles.
	EventCombo
)

func (e Event) String() string {
	switch e {
	case EventButton1:
		return "BUTTON1"
	case EventButton2:
		return "BUTTON2"
	case EventCombo:
		return "COMBO"
	default:
		return "NONE"
	}
}

const (
	// debouncePolls is how many consecutive identical raw reads are
	// needed before the debounced state changes.
	debouncePolls = 2

	// comboPolls is the sustained dual-hold required to confirm.
	comboPolls = 3
)

type buttonState struct {
	// held is the debounced state. Atomic because the timebase reads
	// button 1's hold across the tick/foreground boundary.
	held atomic.Bool

	pendingPolls int
	holdPolls    int
	fired        bool
}

// Manager turns per-poll raw line reads into debounced events and hold
// counters. Poll must be called from the foreground loop only.
type Manager struct {
	b1, b2      buttonState
	comboStreak int
	comboFired  bool
}

// NewManager creates a Manager with both buttons released.
func NewManager() *Manager {
	return &Manager{}
}

// Poll feeds one raw sample of both lines and returns at most one event.
func (m *Manager) Poll(raw1, raw2 bool) Event {
	m.debounce(&m.b1, raw1)
	m.debounce(&m.b2, raw2)

	h1 := m.b1.held.Load()
	h2 := m.b2.held.Load()

	// Combo is checked before singles and wins.
	if h1 && h2 {
		m.comboStreak++
		if !m.comboFired && m.comboStreak >= comboPolls {
			m.comboFired = true
			m.b1.fired = true
			m.b2.fired = true
			return EventCombo
		}
		return EventNone
	}
	m.comboStreak = 0
	if !h1 && !h2 {
		m.comboFired = false
	}

	if h1 && !m.b1.fired {
		m.b1.fired = true
		return EventButton1
	}
	if h2 && !m.b2.fired {
		m.b2.fired = true
		return EventButton2
	}
	return EventNone
}

func (m *Manager) debounce(b *buttonState, raw bool) {
	held := b.held.Load()
	if raw == held {
		b.pendingPolls = 0
	} else {
		b.pendingPolls++
		if b.pendingPolls >= debouncePolls {
			b.held.Store(raw)
			b.pendingPolls = 0
			if !raw {
				b.fired = false
				b.holdPolls = 0
			}
		}
	}
	if b.held.Load() {
		b.holdPolls++
	}
}

// Held1 reports the debounced state of button 1. Safe to call from the
// tick context.
func (m *Manager) Held1() bool { return m.b1.held.Load() }

// Held2 reports the debounced state of button 2.
func (m *Manager) Held2() bool { return m.b2.held.Load() }

// Hold1Polls returns how many polls button 1 has been held.
func (m *Manager) Hold1Polls() int { return m.b1.holdPolls }

// Hold2Polls returns how many polls button 2 has been held.
func (m *Manager) Hold2Polls() int { return m.b2.holdPolls }
