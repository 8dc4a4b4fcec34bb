// Package telemetry publishes watch events over MQTT, with abstraction
// for testing. Publishing is best-effort: the watch never blocks its
// control loop on the broker.
package telemetry

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for step telemetry.
const Topic = "wearables/stepwatch/steps"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "wearables/stepwatch/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishSteps sends a step telemetry event to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishSteps(event StepEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// StepEvent is a periodic step/pace report.
type StepEvent struct {
	Timestamp time.Time
	Steps     uint32
	Pace      float64
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "FATAL"
	Reason     string // e.g., "SIGTERM", "SENSOR READ FAIL"
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// StepPayload is the MQTT message payload for step events.
type StepPayload struct {
	Pedometer PedometerPayload `json:"pedometer"`
}

// PedometerPayload contains the step event details.
type PedometerPayload struct {
	Timestamp string  `json:"timestamp"`
	Steps     uint32  `json:"steps"`
	Pace      float64 `json:"pace"`
}

// FormatStepPayload creates the JSON payload for a step event.
func FormatStepPayload(event StepEvent) ([]byte, error) {
	payload := StepPayload{
		Pedometer: PedometerPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Steps:     event.Steps,
			Pace:      event.Pace,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for simple system events
// that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
