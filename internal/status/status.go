// Package status provides a thread-safe status tracker for the
// stepwatch daemon. It is read by the HTTP handler and by telemetry
// payload builders.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs        int64
	TickMs        int64
	HeartbeatMs   int64
	Broker        string
	HTTPPort      string
	StepThreshold float64
}

// Snapshot is a point-in-time view of watch state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Time          string // watch time "HH:MM:SS"
	Date          string // "DD/MM"
	Format        string // "12H" or "24H"
	Screen        string // active menu state
	Steps         uint32
	Pace          float64
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the watch-facing fields. Called from the run loop.
func (t *Tracker) Update(timeStr, dateStr, format, screen string, steps uint32, pace float64) {
	t.mu.Lock()
	t.snap.Time = timeStr
	t.snap.Date = dateStr
	t.snap.Format = format
	t.snap.Screen = screen
	t.snap.Steps = steps
	t.snap.Pace = pace
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
