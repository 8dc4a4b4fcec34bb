// Command stepwatch runs the control core of a wrist-worn pedometer
// watch: a 1 Hz timebase, a ~20 ms foreground loop over two buttons and
// an I2C accelerometer, a hierarchical menu, and a diff-cached display.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/sweeney/stepwatch/internal/accel"
	"github.com/sweeney/stepwatch/internal/config"
	"github.com/sweeney/stepwatch/internal/display"
	"github.com/sweeney/stepwatch/internal/input"
	"github.com/sweeney/stepwatch/internal/pedometer"
	"github.com/sweeney/stepwatch/internal/status"
	"github.com/sweeney/stepwatch/internal/telemetry"
	"github.com/sweeney/stepwatch/internal/watch"
	"github.com/sweeney/stepwatch/internal/web"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	mode := flag.String("mode", "", `"watch" or "counter" (overrides config)`)
	poll := flag.Duration("poll", 0, "foreground poll period (overrides config)")
	broker := flag.String("broker", "", "MQTT broker address (overrides config; empty disables)")
	heartbeat := flag.Duration("heartbeat", 0, "heartbeat interval (overrides config)")
	httpAddr := flag.String("http", "", "HTTP status address (overrides config)")
	sim := flag.Bool("sim", false, "simulate hardware with keyboard input (1/2/b/h/s/f + enter)")
	asciiGraph := flag.Bool("ascii-graph", false, "print the pace history graph on shutdown")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		cfg = loaded
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *poll != 0 {
		cfg.Poll = *poll
	}
	if *broker != "" {
		cfg.Telemetry.Broker = *broker
	}
	if *heartbeat != 0 {
		cfg.Telemetry.Heartbeat = *heartbeat
	}
	if *httpAddr != "" {
		cfg.Telemetry.HTTPAddr = *httpAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *sim, *asciiGraph); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, sim, asciiGraph bool) error {
	term := display.NewTerm(os.Stdout)
	defer term.Restore()
	renderer := display.NewRenderer(term)

	var (
		lines   input.Lines
		leds    input.Indicators
		sampler accel.Sampler
	)
	if sim {
		dev := newSimDevice(os.Stdin)
		lines = dev
		leds = input.NoopIndicators{}
		sampler = dev
		log.Printf("simulated hardware: 1/2 tap buttons, b both, h hold button 1, s shake, f hold flat")
	} else {
		real, err := input.NewRealLines(cfg.Pins.Button1, cfg.Pins.Button2, cfg.Pins.LED1, cfg.Pins.LED2)
		if err != nil {
			return fmt.Errorf("init gpio: %w", err)
		}
		defer real.Close()
		lines = real
		leds = real

		bus, err := accel.NewRealBus(cfg.I2C.Bus, cfg.I2C.Addr)
		if err != nil {
			return fmt.Errorf("init i2c: %w", err)
		}
		device := accel.NewDevice(bus)
		defer device.Close()
		if err := device.Init(); err != nil {
			// Device identity or init failure is the same fatal halt
			// as a bus failure.
			renderer.Fatal("ACCEL INIT FAIL")
			term.Flush()
			return fmt.Errorf("init accelerometer: %w", err)
		}
		sampler = device
	}

	threshold := cfg.Thresholds.Step
	if cfg.Mode == "counter" {
		threshold = cfg.Thresholds.CounterStep
	}

	shared := watch.NewShared()
	det := pedometer.NewDetector(threshold)
	pace := &pedometer.Pace{}
	mgr := input.NewManager()
	timebase := watch.NewTimeBase(shared, det, pace, mgr)
	core := watch.NewCore(shared, lines, leds, mgr, sampler, det, pace, renderer)

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:        cfg.Poll.Milliseconds(),
		TickMs:        cfg.Tick.Milliseconds(),
		HeartbeatMs:   cfg.Telemetry.Heartbeat.Milliseconds(),
		Broker:        cfg.Telemetry.Broker,
		HTTPPort:      cfg.Telemetry.HTTPAddr,
		StepThreshold: threshold,
	})

	var publisher telemetry.Publisher
	var mqttStatus telemetry.ConnectionStatus
	if cfg.Telemetry.Broker != "" {
		real, err := telemetry.NewRealPublisher(cfg.Telemetry.Broker)
		if err != nil {
			// Telemetry is best-effort; the watch runs without it.
			log.Printf("mqtt connect failed, telemetry disabled: %v", err)
		} else {
			publisher = real
			mqttStatus = real
			defer real.Close()
		}
	}

	if publisher != nil {
		snap := tracker.Snapshot()
		startup := telemetry.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	if cfg.Telemetry.HTTPAddr != "" {
		srv := web.New(cfg.Telemetry.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.Telemetry.HTTPAddr)
	}

	log.Printf("started: mode=%s poll=%v tick=%v threshold=%.0f", cfg.Mode, cfg.Poll, cfg.Tick, threshold)

	pollTicker := time.NewTicker(cfg.Poll)
	defer pollTicker.Stop()
	tickTicker := time.NewTicker(cfg.Tick)
	defer tickTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err := runLoop(loopDeps{
		cfg:        cfg,
		core:       core,
		timebase:   timebase,
		shared:     shared,
		det:        det,
		pace:       pace,
		tracker:    tracker,
		publisher:  publisher,
		mqttStatus: mqttStatus,
		flush:      term.Flush,
	}, pollTicker.C, tickTicker.C, sigCh)

	if asciiGraph {
		printPaceGraph(pace.History())
	}
	return err
}

// loopDeps bundles what the run loop needs; tests build it with fakes.
type loopDeps struct {
	cfg        *config.Config
	core       *watch.Core
	timebase   *watch.TimeBase
	shared     *watch.Shared
	det        *pedometer.Detector
	pace       *pedometer.Pace
	tracker    *status.Tracker
	publisher  telemetry.Publisher
	mqttStatus telemetry.ConnectionStatus
	flush      func()
}

func runLoop(d loopDeps, poll, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := time.Now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			publishShutdown(d, signalName)
			return nil

		case <-tick:
			d.timebase.Tick()
			updateTracker(d)

		case t := <-poll:
			var err error
			if d.cfg.Mode == "counter" {
				err = d.core.StepCounter()
			} else {
				err = d.core.Step()
			}
			if d.flush != nil {
				d.flush()
			}
			if err != nil {
				// A fatal device error halts the watch; only a power
				// cycle (process restart) recovers.
				publishFatal(d, err)
				return err
			}

			if d.publisher != nil && d.cfg.Telemetry.Heartbeat > 0 && t.Sub(lastHeartbeat) >= d.cfg.Telemetry.Heartbeat {
				lastHeartbeat = t
				publishHeartbeat(d, t)
			}
		}
	}
}

func updateTracker(d loopDeps) {
	if d.tracker == nil {
		return
	}
	now := d.shared.Clock()
	machine := d.core.Machine()
	format := "24H"
	if machine.Use12Hour() {
		format = "12H"
	}
	d.tracker.Update(
		fmt.Sprintf("%02d:%02d:%02d", now.Hours, now.Minutes, now.Seconds),
		fmt.Sprintf("%02d/%02d", now.Day, now.Month),
		format,
		machine.State().String(),
		d.det.Total(),
		d.pace.Displayed(),
	)
	if d.mqttStatus != nil {
		d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
	}
}

func publishHeartbeat(d loopDeps, t time.Time) {
	updateTracker(d)
	snap := d.tracker.Snapshot()
	log.Printf("heartbeat: uptime=%v steps=%d pace=%.1f", snap.Uptime().Truncate(time.Second), snap.Steps, snap.Pace)

	if err := d.publisher.PublishSteps(telemetry.StepEvent{
		Timestamp: t,
		Steps:     snap.Steps,
		Pace:      snap.Pace,
	}); err != nil {
		log.Printf("step publish error: %v", err)
	}

	hb := telemetry.SystemEvent{
		Timestamp:  t,
		Event:      "HEARTBEAT",
		RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
	}
	if err := d.publisher.PublishSystem(hb); err != nil {
		log.Printf("heartbeat publish error: %v", err)
	}
}

func publishShutdown(d loopDeps, reason string) {
	if d.publisher == nil {
		return
	}
	updateTracker(d)
	snap := d.tracker.Snapshot()
	event := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := d.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func publishFatal(d loopDeps, cause error) {
	if d.publisher == nil {
		return
	}
	updateTracker(d)
	snap := d.tracker.Snapshot()
	event := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "FATAL",
		Reason:     cause.Error(),
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "FATAL", cause.Error()),
	}
	if err := d.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish fatal event: %v", err)
	}
}

// printPaceGraph renders the pace history ring on the terminal.
func printPaceGraph(history []byte) {
	data := make([]float64, len(history))
	for i, v := range history {
		data[i] = float64(v)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Caption("pace history (steps/min, one column per second)")))
}
