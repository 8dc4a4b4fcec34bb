//go:build linux

package accel

import (
	"fmt"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// RealBus talks to the accelerometer over a Linux I2C character device.
type RealBus struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// NewRealBus opens the named I2C bus ("" selects the first available)
// and addresses the device at addr (7-bit).
func NewRealBus(name string, addr uint16) (*RealBus, error) {
	if _, err := driverreg.Init(); err != nil {
		return nil, fmt.Errorf("init i2c drivers: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return &RealBus{
		bus: bus,
		dev: &i2c.Dev{Addr: addr, Bus: bus},
	}, nil
}

// ReadRegister performs a write-then-read transaction for one register.
func (b *RealBus) ReadRegister(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := b.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("i2c read 0x%02X: %w", reg, err)
	}
	return buf[0], nil
}

// WriteRegister writes one register.
func (b *RealBus) WriteRegister(reg, value uint8) error {
	if err := b.dev.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("i2c write 0x%02X: %w", reg, err)
	}
	return nil
}

// Close releases the I2C bus.
func (b *RealBus) Close() error {
	return b.bus.Close()
}
