package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepwatch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
	if cfg.Mode != "watch" {
		t.Errorf("Mode = %q, want watch", cfg.Mode)
	}
	if cfg.Poll != 20*time.Millisecond || cfg.Tick != time.Second {
		t.Errorf("periods = %v %v", cfg.Poll, cfg.Tick)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: counter
poll: 50ms
telemetry:
  broker: tcp://broker:1883
  http: ":8089"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "counter" || cfg.Poll != 50*time.Millisecond {
		t.Errorf("mode/poll = %q %v", cfg.Mode, cfg.Poll)
	}
	if cfg.Telemetry.Broker != "tcp://broker:1883" || cfg.Telemetry.HTTPAddr != ":8089" {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}

	// Unset fields fall back to defaults.
	d := Default()
	if cfg.Tick != d.Tick {
		t.Errorf("Tick = %v, want default %v", cfg.Tick, d.Tick)
	}
	if cfg.Pins != d.Pins {
		t.Errorf("Pins = %+v, want defaults %+v", cfg.Pins, d.Pins)
	}
	if cfg.Thresholds != d.Thresholds {
		t.Errorf("Thresholds = %+v, want defaults %+v", cfg.Thresholds, d.Thresholds)
	}
}

func TestLoadExplicitZeroHeartbeatSticks(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  broker: tcp://broker:1883
  heartbeat: 0s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telemetry.Heartbeat != 0 {
		t.Errorf("Heartbeat = %v, want 0 (disabled)", cfg.Telemetry.Heartbeat)
	}
}

func TestLoadExplicitZeroPollIsRejected(t *testing.T) {
	path := writeConfig(t, "poll: 0s\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject an explicit zero poll period")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "mode: [nope")
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := Default()
	cfg.Mode = "sprint"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an unknown mode")
	}
}

func TestValidateRejectsNonPositivePeriods(t *testing.T) {
	cfg := Default()
	cfg.Poll = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a zero poll period")
	}

	cfg = Default()
	cfg.Tick = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a negative tick period")
	}
}

func TestValidateRejectsNonPositiveThresholds(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.Step = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a negative threshold")
	}
}
