package telemetry

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// bufferCapacity bounds how many messages queue while disconnected.
const bufferCapacity = 64

// RealPublisher publishes to an actual MQTT broker, queueing messages
// in an outbox while the connection is down and replaying them on
// reconnect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending *outbox
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{pending: newOutbox(bufferCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("stepwatch").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) { p.drain() })

	client := paho.NewClient(opts)
	p.client = client

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// PublishSteps sends a step telemetry event to the broker.
func (p *RealPublisher) PublishSteps(event StepEvent) error {
	payload, err := FormatStepPayload(event)
	if err != nil {
		return fmt.Errorf("format step payload: %w", err)
	}
	// QoS 0 (at-most-once): step reports are superseded by the next one.
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events - we want delivery.
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.pending.add(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := p.pending.size()
		p.mu.Unlock()
		return fmt.Errorf("not connected, queued (%d pending)", n)
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// drain replays queued messages after a reconnect.
func (p *RealPublisher) drain() {
	p.mu.Lock()
	msgs := p.pending.takeAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("telemetry: connected, replaying %d queued messages", len(msgs))
	for _, m := range msgs {
		token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("telemetry: replay timeout on %s", m.topic)
		} else if err := token.Error(); err != nil {
			log.Printf("telemetry: replay error on %s: %v", m.topic, err)
		}
	}
}

// IsConnected reports whether the MQTT connection is active.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
