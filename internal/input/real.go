//go:build linux

package input

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// RealLines reads buttons and drives LEDs through the Linux GPIO
// character device.
type RealLines struct {
	chip *gpiocdev.Chip
	b1   *gpiocdev.Line
	b2   *gpiocdev.Line
	led1 *gpiocdev.Line
	led2 *gpiocdev.Line
}

// NewRealLines requests the two button lines as pulled-up inputs
// (buttons are active-low) and the two LED lines as outputs.
func NewRealLines(pinB1, pinB2, pinLED1, pinLED2 int) (*RealLines, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b1, err := chip.RequestLine(pinB1, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button1 pin %d: %w", pinB1, err)
	}
	b2, err := chip.RequestLine(pinB2, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		b1.Close()
		chip.Close()
		return nil, fmt.Errorf("request button2 pin %d: %w", pinB2, err)
	}
	led1, err := chip.RequestLine(pinLED1, gpiocdev.AsOutput(0))
	if err != nil {
		b2.Close()
		b1.Close()
		chip.Close()
		return nil, fmt.Errorf("request led1 pin %d: %w", pinLED1, err)
	}
	led2, err := chip.RequestLine(pinLED2, gpiocdev.AsOutput(0))
	if err != nil {
		led1.Close()
		b2.Close()
		b1.Close()
		chip.Close()
		return nil, fmt.Errorf("request led2 pin %d: %w", pinLED2, err)
	}

	return &RealLines{chip: chip, b1: b1, b2: b2, led1: led1, led2: led2}, nil
}

// Read returns the logical pressed states. Raw low (0) = pressed.
func (r *RealLines) Read() (bool, bool, error) {
	raw1, err := r.b1.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button1: %w", err)
	}
	raw2, err := r.b2.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button2: %w", err)
	}
	return raw1 == 0, raw2 == 0, nil
}

// Set drives the indicator LEDs.
func (r *RealLines) Set(led1, led2 bool) {
	if err := r.led1.SetValue(boolToLevel(led1)); err != nil {
		log.Printf("input: set led1: %v", err)
	}
	if err := r.led2.SetValue(boolToLevel(led2)); err != nil {
		log.Printf("input: set led2: %v", err)
	}
}

func boolToLevel(on bool) int {
	if on {
		return 1
	}
	return 0
}

// Close releases all requested lines and the chip.
func (r *RealLines) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{r.b1, r.b2, r.led1, r.led2} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
