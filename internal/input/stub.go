//go:build !linux

package input

import "errors"

// RealLines is not available on non-Linux platforms.
type RealLines struct{}

// NewRealLines returns an error on non-Linux platforms.
func NewRealLines(pinB1, pinB2, pinLED1, pinLED2 int) (*RealLines, error) {
	return nil, errors.New("input: gpio not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealLines) Read() (bool, bool, error) {
	return false, false, errors.New("input: not supported")
}

// Set is a no-op on non-Linux platforms.
func (r *RealLines) Set(led1, led2 bool) {}

// Close is a no-op on non-Linux platforms.
func (r *RealLines) Close() error { return nil }
