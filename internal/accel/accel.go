// Package accel reads the 3-axis accelerometer over a register bus.
// The real implementation uses an I2C character device via periph.io.
// The fake implementation allows testing without hardware.
package accel

import (
	"fmt"
	"math"
	"time"
)

// Bus is the register-level transport to the accelerometer. A single
// read or write attempt may fail transiently; retry policy lives in
// Device, not in Bus implementations.
type Bus interface {
	// ReadRegister reads one byte from the given register address.
	ReadRegister(reg uint8) (uint8, error)

	// WriteRegister writes one byte to the given register address.
	WriteRegister(reg, value uint8) error

	// Close releases the bus.
	Close() error
}

// ADXL345 register map (the subset the watch uses).
const (
	regDeviceID   = 0x00
	regPowerCtl   = 0x2D
	regDataFormat = 0x31
	regDataX0     = 0x32
	regDataY0     = 0x34
	regDataZ0     = 0x36

	deviceID        = 0xE5
	measureMode     = 0x08
	dataFormatValue = 0x0B
)

const (
	// axisGain scales raw axis counts into force units.
	axisGain = 4.0

	// GravityBaseline is the magnitude reading of a device at rest.
	GravityBaseline = 1024.0

	// LevelThreshold is the magnitude below which the device is
	// considered held flat (the menu confirm gesture).
	LevelThreshold = 600.0

	retryAttempts = 3
	retryDelay    = 10 * time.Millisecond
)

// Sample is one 3-axis accelerometer reading. Ephemeral: produced and
// consumed within a single sampling call.
type Sample struct {
	X, Y, Z int16
}

// Magnitude returns the scaled Euclidean magnitude of the sample.
func (s Sample) Magnitude() float64 {
	ax := float64(s.X) * axisGain
	ay := float64(s.Y) * axisGain
	az := float64(s.Z) * axisGain
	return math.Sqrt(ax*ax + ay*ay + az*az)
}

// IsLevel reports whether a magnitude reading indicates the device is
// held flat.
func IsLevel(magnitude float64) bool {
	return magnitude < LevelThreshold
}

// Sampler is the narrow contract the watch core consumes. Device is the
// bus-backed implementation.
type Sampler interface {
	// ReadSample reads all three axes. A persistent bus failure is
	// fatal to the watch; callers do not retry further.
	ReadSample() (Sample, error)
}

// Device drives the accelerometer through a Bus, retrying each register
// access up to retryAttempts times with a fixed delay. Exhausting
// retries is a fatal device error.
type Device struct {
	bus   Bus
	sleep func(time.Duration)
}

// NewDevice wraps the given bus.
func NewDevice(bus Bus) *Device {
	return &Device{bus: bus, sleep: time.Sleep}
}

// Init probes the device identity and configures measurement mode.
// Any failure here is fatal: there is no distinction between a device
// that is absent and one that is misbehaving.
func (d *Device) Init() error {
	id, err := d.readRegister(regDeviceID)
	if err != nil {
		return fmt.Errorf("probe device id: %w", err)
	}
	if id != deviceID {
		return fmt.Errorf("wrong device id: got 0x%02X, want 0x%02X", id, deviceID)
	}

	if err := d.writeRegister(regPowerCtl, measureMode); err != nil {
		return fmt.Errorf("enable measure mode: %w", err)
	}
	if err := d.writeRegister(regDataFormat, dataFormatValue); err != nil {
		return fmt.Errorf("set data format: %w", err)
	}
	return nil
}

// ReadSample reads x/y/z as little-endian 16-bit pairs.
func (d *Device) ReadSample() (Sample, error) {
	x, err := d.readAxis(regDataX0)
	if err != nil {
		return Sample{}, fmt.Errorf("read x axis: %w", err)
	}
	y, err := d.readAxis(regDataY0)
	if err != nil {
		return Sample{}, fmt.Errorf("read y axis: %w", err)
	}
	z, err := d.readAxis(regDataZ0)
	if err != nil {
		return Sample{}, fmt.Errorf("read z axis: %w", err)
	}
	return Sample{X: x, Y: y, Z: z}, nil
}

// Close releases the underlying bus.
func (d *Device) Close() error {
	return d.bus.Close()
}

func (d *Device) readAxis(reg uint8) (int16, error) {
	low, err := d.readRegister(reg)
	if err != nil {
		return 0, fmt.Errorf("lsb: %w", err)
	}
	high, err := d.readRegister(reg + 1)
	if err != nil {
		return 0, fmt.Errorf("msb: %w", err)
	}
	return int16(uint16(high)<<8 | uint16(low)), nil
}

func (d *Device) readRegister(reg uint8) (uint8, error) {
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		v, err := d.bus.ReadRegister(reg)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if i < retryAttempts-1 {
			d.sleep(retryDelay)
		}
	}
	return 0, fmt.Errorf("read register 0x%02X after %d attempts: %w", reg, retryAttempts, lastErr)
}

func (d *Device) writeRegister(reg, value uint8) error {
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		err := d.bus.WriteRegister(reg, value)
		if err == nil {
			return nil
		}
		lastErr = err
		if i < retryAttempts-1 {
			d.sleep(retryDelay)
		}
	}
	return fmt.Errorf("write register 0x%02X after %d attempts: %w", reg, retryAttempts, lastErr)
}
