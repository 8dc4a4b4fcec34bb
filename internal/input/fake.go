package input

import "errors"

// FakeLines is a test double that returns scripted button states.
type FakeLines struct {
	// Samples contains scripted (button1, button2) values to return.
	// Each call to Read() consumes the next sample; when exhausted, the
	// last sample repeats.
	Samples []Sample

	index int

	// Closed tracks if Close was called.
	Closed bool

	// ReadError, if set, will be returned by Read().
	ReadError error
}

// Sample represents a single poll of both buttons (logical form).
type Sample struct {
	B1 bool // true = pressed
	B2 bool
}

// NewFakeLines creates a FakeLines with the given samples.
func NewFakeLines(samples []Sample) *FakeLines {
	return &FakeLines{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeLines) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.B1, s.B2, nil
}

// Close marks the lines as closed.
func (f *FakeLines) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script to its first sample.
func (f *FakeLines) Reset() {
	f.index = 0
}

// FakeIndicators records LED states for test assertions.
type FakeIndicators struct {
	LED1, LED2 bool
	SetCalls   int
}

// Set records the LED states.
func (f *FakeIndicators) Set(led1, led2 bool) {
	f.LED1 = led1
	f.LED2 = led2
	f.SetCalls++
}

// NoopIndicators discards LED updates.
type NoopIndicators struct{}

// Set does nothing.
func (NoopIndicators) Set(led1, led2 bool) {}
