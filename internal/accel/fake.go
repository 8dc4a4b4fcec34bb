package accel

import "fmt"

// FakeBus is a test double backed by an in-memory register map with
// optional per-register failure injection.
type FakeBus struct {
	// Registers holds the current register values.
	Registers map[uint8]uint8

	// FailReads maps a register address to the number of read attempts
	// that should fail before one succeeds. A negative count fails
	// forever.
	FailReads map[uint8]int

	// FailWrites works like FailReads for writes.
	FailWrites map[uint8]int

	// Writes records every successful write in order.
	Writes []RegisterWrite

	// Closed tracks if Close was called.
	Closed bool
}

// RegisterWrite records one write for test assertions.
type RegisterWrite struct {
	Reg   uint8
	Value uint8
}

// NewFakeBus creates a FakeBus that identifies as a healthy device.
func NewFakeBus() *FakeBus {
	return &FakeBus{
		Registers:  map[uint8]uint8{regDeviceID: deviceID},
		FailReads:  map[uint8]int{},
		FailWrites: map[uint8]int{},
	}
}

// SetSample loads the axis data registers from a sample.
func (b *FakeBus) SetSample(s Sample) {
	b.Registers[regDataX0] = uint8(uint16(s.X))
	b.Registers[regDataX0+1] = uint8(uint16(s.X) >> 8)
	b.Registers[regDataY0] = uint8(uint16(s.Y))
	b.Registers[regDataY0+1] = uint8(uint16(s.Y) >> 8)
	b.Registers[regDataZ0] = uint8(uint16(s.Z))
	b.Registers[regDataZ0+1] = uint8(uint16(s.Z) >> 8)
}

// ReadRegister returns the scripted register value, honoring failure
// injection.
func (b *FakeBus) ReadRegister(reg uint8) (uint8, error) {
	if n := b.FailReads[reg]; n != 0 {
		if n > 0 {
			b.FailReads[reg] = n - 1
		}
		return 0, fmt.Errorf("injected read failure at 0x%02X", reg)
	}
	return b.Registers[reg], nil
}

// WriteRegister stores the value, honoring failure injection.
func (b *FakeBus) WriteRegister(reg, value uint8) error {
	if n := b.FailWrites[reg]; n != 0 {
		if n > 0 {
			b.FailWrites[reg] = n - 1
		}
		return fmt.Errorf("injected write failure at 0x%02X", reg)
	}
	b.Registers[reg] = value
	b.Writes = append(b.Writes, RegisterWrite{Reg: reg, Value: value})
	return nil
}

// Close marks the bus as closed.
func (b *FakeBus) Close() error {
	b.Closed = true
	return nil
}

// FakeSampler returns scripted samples directly, bypassing the register
// layer. Useful for core-loop tests that only care about magnitudes.
type FakeSampler struct {
	// Samples contains scripted readings; each call consumes the next.
	// When exhausted, the last sample repeats.
	Samples []Sample

	// Err, if set, is returned by ReadSample.
	Err error

	index int
}

// Reset rewinds the script to its first sample.
func (f *FakeSampler) Reset() {
	f.index = 0
}

// ReadSample returns the next scripted sample.
func (f *FakeSampler) ReadSample() (Sample, error) {
	if f.Err != nil {
		return Sample{}, f.Err
	}
	if len(f.Samples) == 0 {
		return Sample{}, nil
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}
