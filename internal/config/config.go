// Package config loads the stepwatch YAML configuration. Flags in cmd
// override individual fields; everything has a working default so the
// daemon runs with no file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/stepwatch/internal/input"
	"github.com/sweeney/stepwatch/internal/pedometer"
)

// Config is the stepwatch daemon configuration.
type Config struct {
	// Mode selects "watch" (full application) or "counter" (the
	// degenerate step-counter-only configuration).
	Mode string `yaml:"mode"`

	Pins       PinsConfig       `yaml:"pins"`
	I2C        I2CConfig        `yaml:"i2c"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Poll is the foreground loop period; Tick is the timebase period.
	Poll time.Duration `yaml:"poll"`
	Tick time.Duration `yaml:"tick"`
}

// PinsConfig holds GPIO pin assignments (BCM numbering).
type PinsConfig struct {
	Button1 int `yaml:"button1"`
	Button2 int `yaml:"button2"`
	LED1    int `yaml:"led1"`
	LED2    int `yaml:"led2"`
}

// I2CConfig addresses the accelerometer.
type I2CConfig struct {
	Bus  string `yaml:"bus"`  // "" selects the first available bus
	Addr uint16 `yaml:"addr"` // 7-bit device address
}

// ThresholdsConfig holds the motion tuning constants.
type ThresholdsConfig struct {
	// Step is the dynamic-force threshold in watch mode; CounterStep
	// is the (lower) threshold for counter mode. Tunables: the two
	// field tunings are deliberately not reconciled.
	Step        float64 `yaml:"step"`
	CounterStep float64 `yaml:"counter_step"`
}

// TelemetryConfig configures the MQTT and HTTP surfaces.
type TelemetryConfig struct {
	Broker    string        `yaml:"broker"` // empty disables MQTT
	Heartbeat time.Duration `yaml:"heartbeat"`
	HTTPAddr  string        `yaml:"http"` // empty disables the status server
}

// Default returns the configuration the watch boots with.
func Default() *Config {
	return &Config{
		Mode: "watch",
		Pins: PinsConfig{
			Button1: input.DefaultPinButton1,
			Button2: input.DefaultPinButton2,
			LED1:    input.DefaultPinLED1,
			LED2:    input.DefaultPinLED2,
		},
		I2C: I2CConfig{
			Bus:  "",
			Addr: 0x1D,
		},
		Thresholds: ThresholdsConfig{
			Step:        pedometer.DefaultThreshold,
			CounterStep: pedometer.CounterThreshold,
		},
		Telemetry: TelemetryConfig{
			Heartbeat: 15 * time.Minute,
			HTTPAddr:  "",
		},
		Poll: 20 * time.Millisecond,
		Tick: time.Second,
	}
}

// Load reads the config from a YAML file. The file is decoded over the
// defaults, so keys it omits keep their default and explicit zeroes
// stick (heartbeat: 0 disables heartbeats rather than reverting to the
// default interval).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Mode != "watch" && c.Mode != "counter" {
		return fmt.Errorf("invalid mode %q (want \"watch\" or \"counter\")", c.Mode)
	}
	if c.Poll <= 0 {
		return fmt.Errorf("poll period must be positive, got %v", c.Poll)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick period must be positive, got %v", c.Tick)
	}
	if c.Thresholds.Step <= 0 || c.Thresholds.CounterStep <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	return nil
}
