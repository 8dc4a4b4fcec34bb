package main

import (
	"bufio"
	"io"
	"log"
	"sync"
	"time"

	"github.com/sweeney/stepwatch/internal/accel"
)

// simDevice stands in for the buttons and the accelerometer so the
// watch can run on a desk. Keys are read line-buffered from stdin, each
// followed by enter:
//
//	1  tap button 1
//	2  tap button 2
//	b  press both buttons (menu action combo)
//	h  hold button 1 (menu entry, graph exit)
//	s  shake for two seconds (generates steps)
//	f  hold the device flat for two seconds (edit confirm)
type simDevice struct {
	mu         sync.Mutex
	b1Until    time.Time
	b2Until    time.Time
	shakeUntil time.Time
	flatUntil  time.Time
	shakePhase int
}

const (
	simTap     = 150 * time.Millisecond
	simHold    = 2500 * time.Millisecond
	simGesture = 2 * time.Second
)

func newSimDevice(r io.Reader) *simDevice {
	d := &simDevice{}
	go d.readKeys(r)
	return d
}

func (d *simDevice) readKeys(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		d.mu.Lock()
		now := time.Now()
		switch line[0] {
		case '1':
			d.b1Until = now.Add(simTap)
		case '2':
			d.b2Until = now.Add(simTap)
		case 'b':
			d.b1Until = now.Add(simTap)
			d.b2Until = now.Add(simTap)
		case 'h':
			d.b1Until = now.Add(simHold)
		case 's':
			d.shakeUntil = now.Add(simGesture)
		case 'f':
			d.flatUntil = now.Add(simGesture)
		default:
			log.Printf("sim: unknown key %q", line[0])
		}
		d.mu.Unlock()
	}
}

// Read reports the simulated button levels.
func (d *simDevice) Read() (bool, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	return now.Before(d.b1Until), now.Before(d.b2Until), nil
}

// Close implements input.Lines.
func (d *simDevice) Close() error { return nil }

// ReadSample returns a resting-gravity sample, a below-gravity sample
// while "flat", or an alternating spike train while "shaking". The
// spike train rises through the step threshold once per cycle.
func (d *simDevice) ReadSample() (accel.Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()

	if now.Before(d.flatUntil) {
		return accel.Sample{Z: 100}, nil
	}
	if now.Before(d.shakeUntil) {
		d.shakePhase++
		// One step roughly every 16 polls (~3 steps/s at 20 ms).
		if d.shakePhase%16 < 8 {
			return accel.Sample{Z: 600}, nil
		}
	}
	return accel.Sample{Z: 256}, nil
}
