package status

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestTracker() *Tracker {
	return NewTracker(time.Now().Add(-90*time.Second), Config{
		PollMs:        20,
		TickMs:        1000,
		HeartbeatMs:   900000,
		Broker:        "tcp://localhost:1883",
		HTTPPort:      ":8089",
		StepThreshold: 900,
	})
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := newTestTracker()
	tr.Update("04:00:15", "24/01", "12H", "CLOCK", 42, 60.5)

	snap := tr.Snapshot()
	if snap.Time != "04:00:15" || snap.Date != "24/01" {
		t.Errorf("snapshot time/date = %q %q", snap.Time, snap.Date)
	}
	if snap.Steps != 42 || snap.Pace != 60.5 {
		t.Errorf("steps/pace = %d %v", snap.Steps, snap.Pace)
	}
	if snap.Screen != "CLOCK" || snap.Format != "12H" {
		t.Errorf("screen/format = %q %q", snap.Screen, snap.Format)
	}
}

func TestUptime(t *testing.T) {
	tr := newTestTracker()
	up := tr.Snapshot().Uptime()
	if up < 89*time.Second || up > 92*time.Second {
		t.Errorf("Uptime = %v, want ~90s", up)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := newTestTracker()
	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("MQTTConnected should be true")
	}
}

func TestFormatJSON(t *testing.T) {
	tr := newTestTracker()
	tr.Update("04:00:15", "24/01", "12H", "MAIN_MENU", 42, 60.5)

	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := decoded.Status
	if s.Event != "" || s.Reason != "" {
		t.Errorf("web status should carry no event, got %q %q", s.Event, s.Reason)
	}
	if s.Screen != "MAIN_MENU" || s.Steps != 42 {
		t.Errorf("screen/steps = %q %d", s.Screen, s.Steps)
	}
	if s.Config.StepThreshold != 900 {
		t.Errorf("threshold = %v, want 900", s.Config.StepThreshold)
	}
	if s.UptimeSeconds < 89 || s.UptimeSeconds > 92 {
		t.Errorf("uptime = %d, want ~90", s.UptimeSeconds)
	}
}

func TestFormatStatusEventCarriesEventAndReason(t *testing.T) {
	tr := newTestTracker()
	var decoded StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM"), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" || decoded.Status.Reason != "SIGTERM" {
		t.Errorf("event/reason = %q %q", decoded.Status.Event, decoded.Status.Reason)
	}
}

func TestUnknownScreenPlaceholder(t *testing.T) {
	tr := newTestTracker()
	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status.Screen != "UNKNOWN" {
		t.Errorf("screen = %q, want UNKNOWN before first update", decoded.Status.Screen)
	}
}
