package telemetry

import "log"

// queuedMsg is a serialized MQTT message held for replay.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox holds messages published while the broker is unreachable.
// Bounded; once full the oldest message is discarded for each new one.
// Not safe for concurrent use, the caller synchronizes.
type outbox struct {
	msgs    []queuedMsg
	limit   int
	dropped int
}

func newOutbox(limit int) *outbox {
	return &outbox{limit: limit}
}

// add queues a message, discarding the oldest when the outbox is full.
func (o *outbox) add(m queuedMsg) {
	if len(o.msgs) < o.limit {
		o.msgs = append(o.msgs, m)
		return
	}
	if o.dropped == 0 {
		log.Printf("telemetry: outbox full (%d messages), dropping oldest", o.limit)
	}
	o.dropped++
	copy(o.msgs, o.msgs[1:])
	o.msgs[len(o.msgs)-1] = m
}

// takeAll returns the queued messages oldest-first and empties the
// outbox.
func (o *outbox) takeAll() []queuedMsg {
	if len(o.msgs) == 0 {
		return nil
	}
	out := o.msgs
	o.msgs = nil
	o.dropped = 0
	return out
}

func (o *outbox) size() int {
	return len(o.msgs)
}
