package events

import "time"

// Event is one domain fact put on the bus: a completed chat turn or a
// change to the learned reply estimates.
type Event interface {
	// EventType returns the event code (e.g. "QVALUE_UPDATED").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

// BaseEvent is the concrete event used by BusPublisher and by subscribers
// rebuilding events from the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
