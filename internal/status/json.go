package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Time          string     `json:"time"`
	Date          string     `json:"date"`
	Format        string     `json:"format"`
	Screen        string     `json:"screen"`
	Steps         uint32     `json:"steps"`
	Pace          float64    `json:"pace"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs        int64   `json:"poll_ms"`
	TickMs        int64   `json:"tick_ms"`
	HeartbeatMs   int64   `json:"heartbeat_ms"`
	Broker        string  `json:"broker"`
	HTTPPort      string  `json:"http_port"`
	StepThreshold float64 `json:"step_threshold"`
}

func buildInner(snap Snapshot) StatusInner {
	screen := snap.Screen
	if screen == "" {
		screen = "UNKNOWN"
	}

	return StatusInner{
		Time:          snap.Time,
		Date:          snap.Date,
		Format:        snap.Format,
		Screen:        screen,
		Steps:         snap.Steps,
		Pace:          snap.Pace,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:        snap.Config.PollMs,
			TickMs:        snap.Config.TickMs,
			HeartbeatMs:   snap.Config.HeartbeatMs,
			Broker:        snap.Config.Broker,
			HTTPPort:      snap.Config.HTTPPort,
			StepThreshold: snap.Config.StepThreshold,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
