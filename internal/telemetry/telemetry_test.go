package telemetry

import (
	"encoding/json"
	"testing"
	"time"
)

var testTime = time.Date(2026, 1, 24, 4, 0, 0, 0, time.UTC)

func TestFormatStepPayload(t *testing.T) {
	payload, err := FormatStepPayload(StepEvent{
		Timestamp: testTime,
		Steps:     1234,
		Pace:      72.5,
	})
	if err != nil {
		t.Fatalf("FormatStepPayload: %v", err)
	}

	var decoded StepPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Pedometer.Steps != 1234 {
		t.Errorf("steps = %d, want 1234", decoded.Pedometer.Steps)
	}
	if decoded.Pedometer.Pace != 72.5 {
		t.Errorf("pace = %v, want 72.5", decoded.Pedometer.Pace)
	}
	if decoded.Pedometer.Timestamp != "2026-01-24T04:00:00Z" {
		t.Errorf("timestamp = %q", decoded.Pedometer.Timestamp)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: testTime,
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var decoded SystemPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.System.Event != "SHUTDOWN" || decoded.System.Reason != "SIGTERM" {
		t.Errorf("decoded = %+v", decoded.System)
	}
}

func TestFormatSystemPayloadPassesRawThrough(t *testing.T) {
	raw := []byte(`{"status":{}}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("payload = %s, want raw passthrough", payload)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()
	if err := f.PublishSteps(StepEvent{Timestamp: testTime, Steps: 7}); err != nil {
		t.Fatalf("PublishSteps: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Timestamp: testTime, Event: "STARTUP"}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.StepEvents) != 1 || f.StepEvents[0].Steps != 7 {
		t.Errorf("StepEvents = %+v", f.StepEvents)
	}
	if len(f.SystemEvents) != 1 || f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("SystemEvents = %+v", f.SystemEvents)
	}
}

func TestOutboxFIFO(t *testing.T) {
	o := newOutbox(4)
	o.add(queuedMsg{topic: "a"})
	o.add(queuedMsg{topic: "b"})
	o.add(queuedMsg{topic: "c"})

	if o.size() != 3 {
		t.Fatalf("size = %d, want 3", o.size())
	}
	msgs := o.takeAll()
	if len(msgs) != 3 || msgs[0].topic != "a" || msgs[2].topic != "c" {
		t.Errorf("takeAll = %+v", msgs)
	}
	if o.size() != 0 {
		t.Errorf("size after takeAll = %d, want 0", o.size())
	}
}

func TestOutboxDropsOldestWhenFull(t *testing.T) {
	o := newOutbox(3)
	for _, topic := range []string{"a", "b", "c", "d", "e"} {
		o.add(queuedMsg{topic: topic})
	}

	msgs := o.takeAll()
	if len(msgs) != 3 {
		t.Fatalf("takeAll returned %d messages, want 3", len(msgs))
	}
	want := []string{"c", "d", "e"}
	for i, w := range want {
		if msgs[i].topic != w {
			t.Errorf("msg %d topic = %q, want %q", i, msgs[i].topic, w)
		}
	}
}

func TestOutboxTakeAllEmpty(t *testing.T) {
	o := newOutbox(2)
	if msgs := o.takeAll(); msgs != nil {
		t.Errorf("takeAll on empty = %+v, want nil", msgs)
	}
}
