package input

import "testing"

func pollN(m *Manager, raw1, raw2 bool, n int) []Event {
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		if ev := m.Poll(raw1, raw2); ev != EventNone {
			events = append(events, ev)
		}
	}
	return events
}

func TestSinglePollDoesNotRegister(t *testing.T) {
	m := NewManager()
	if ev := m.Poll(true, false); ev != EventNone {
		t.Errorf("one raw poll produced %v, want NONE (debounce)", ev)
	}
	if m.Held1() {
		t.Error("one raw poll should not latch the held state")
	}
}

func TestButton1FiresOnceOnDebouncedPress(t *testing.T) {
	m := NewManager()
	events := pollN(m, true, false, 5)
	if len(events) != 1 || events[0] != EventButton1 {
		t.Errorf("events = %v, want [BUTTON1]", events)
	}
	if !m.Held1() {
		t.Error("Held1 should be true while pressed")
	}
}

func TestButton2FiresOnceOnDebouncedPress(t *testing.T) {
	m := NewManager()
	events := pollN(m, false, true, 5)
	if len(events) != 1 || events[0] != EventButton2 {
		t.Errorf("events = %v, want [BUTTON2]", events)
	}
}

func TestReleaseAndRepress(t *testing.T) {
	m := NewManager()
	pollN(m, true, false, 3)
	pollN(m, false, false, 3)
	if m.Held1() {
		t.Fatal("Held1 should be false after debounced release")
	}
	events := pollN(m, true, false, 3)
	if len(events) != 1 || events[0] != EventButton1 {
		t.Errorf("second press events = %v, want [BUTTON1]", events)
	}
}

func TestBounceIsFiltered(t *testing.T) {
	m := NewManager()
	// Alternating raw reads never reach the debounce count.
	for i := 0; i < 10; i++ {
		if ev := m.Poll(i%2 == 0, false); ev != EventNone {
			t.Fatalf("bouncing line produced %v", ev)
		}
	}
	if m.Held1() {
		t.Error("bouncing line should never latch")
	}
}

func TestComboFiresAfterSustainedDualHold(t *testing.T) {
	m := NewManager()
	events := pollN(m, true, true, 10)
	if len(events) != 1 || events[0] != EventCombo {
		t.Errorf("events = %v, want [COMBO]", events)
	}
}

func TestComboSuppressesSingles(t *testing.T) {
	m := NewManager()
	events := pollN(m, true, true, 10)
	for _, ev := range events {
		if ev == EventButton1 || ev == EventButton2 {
			t.Errorf("dual hold produced single event %v", ev)
		}
	}
}

func TestComboRequiresFullStreak(t *testing.T) {
	m := NewManager()
	// Both held long enough to debounce but the dual streak is broken
	// before it reaches the combo count.
	m.Poll(true, true)
	m.Poll(true, true) // held, streak 1
	m.Poll(true, false)
	m.Poll(true, false)
	events := pollN(m, true, true, 2)
	for _, ev := range events {
		if ev == EventCombo {
			t.Error("broken streak should not fire combo yet")
		}
	}
}

func TestComboDoesNotRefireUntilBothReleased(t *testing.T) {
	m := NewManager()
	pollN(m, true, true, 10)
	// Release one button, press it again: no second combo.
	pollN(m, true, false, 3)
	events := pollN(m, true, true, 10)
	for _, ev := range events {
		if ev == EventCombo {
			t.Error("combo refired without a full release")
		}
	}
	// Full release re-arms it.
	pollN(m, false, false, 3)
	events = pollN(m, true, true, 10)
	if len(events) != 1 || events[0] != EventCombo {
		t.Errorf("events after re-arm = %v, want [COMBO]", events)
	}
}

func TestHoldPollsCountWhileHeld(t *testing.T) {
	m := NewManager()
	pollN(m, true, false, 6)
	if got := m.Hold1Polls(); got != 5 {
		t.Errorf("Hold1Polls = %d, want 5", got)
	}
	if got := m.Hold2Polls(); got != 0 {
		t.Errorf("Hold2Polls = %d, want 0", got)
	}
	pollN(m, false, false, 3)
	if got := m.Hold1Polls(); got != 0 {
		t.Errorf("Hold1Polls after release = %d, want 0", got)
	}
}

func TestFakeLinesReplaysScript(t *testing.T) {
	f := &FakeLines{Samples: []Sample{{B1: true}, {B1: true, B2: true}}}
	b1, b2, err := f.Read()
	if err != nil || !b1 || b2 {
		t.Errorf("first read = (%v, %v, %v), want (true, false, nil)", b1, b2, err)
	}
	b1, b2, _ = f.Read()
	if !b1 || !b2 {
		t.Errorf("second read = (%v, %v), want (true, true)", b1, b2)
	}
	// Past the script the last sample repeats.
	b1, b2, _ = f.Read()
	if !b1 || !b2 {
		t.Errorf("read past script = (%v, %v), want (true, true)", b1, b2)
	}
}

func TestFakeIndicatorsRecord(t *testing.T) {
	f := &FakeIndicators{}
	f.Set(true, false)
	f.Set(false, true)
	if f.SetCalls != 2 {
		t.Errorf("SetCalls = %d, want 2", f.SetCalls)
	}
	if f.LED1 || !f.LED2 {
		t.Errorf("LEDs = (%v, %v), want (false, true)", f.LED1, f.LED2)
	}
}
