//go:build !linux

package accel

import "errors"

// RealBus is not available on non-Linux platforms.
type RealBus struct{}

// NewRealBus returns an error on non-Linux platforms.
func NewRealBus(name string, addr uint16) (*RealBus, error) {
	return nil, errors.New("accel: i2c not supported on this platform (requires Linux)")
}

// ReadRegister is not implemented on non-Linux platforms.
func (b *RealBus) ReadRegister(reg uint8) (uint8, error) {
	return 0, errors.New("accel: not supported")
}

// WriteRegister is not implemented on non-Linux platforms.
func (b *RealBus) WriteRegister(reg, value uint8) error {
	return errors.New("accel: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealBus) Close() error {
	return nil
}
