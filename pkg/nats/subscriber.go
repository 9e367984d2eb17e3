package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/events"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	headerEventType  = "Event-Type"
	headerOccurredAt = "Event-Occurred-At"
	timeLayout       = time.RFC3339Nano
)

// EventHandler processes one event. A returned error redelivers it.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber consumes events through durable JetStream consumers.
type Subscriber struct {
	js     jetstream.JetStream
	logger logger.ILogger
}

func NewSubscriber(js jetstream.JetStream, logger logger.ILogger) *Subscriber {
	return &Subscriber{js: js, logger: logger}
}

// Subscribe starts consuming subject with a durable consumer. The returned
// stop function ends consumption.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) (func(), error) {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := decode(msg)
		if err != nil {
			s.logger.Warn("NATS", "Dropping undecodable event", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			s.logger.Error("NATS", "Handler failed", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	s.logger.Info("NATS", "Subscribed", map[string]interface{}{"subject": subject, "durable": durableName})
	return cc.Stop, nil
}

func decode(msg jetstream.Msg) (events.Event, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Data(), &payload); err != nil {
		return nil, err
	}

	eventType := strings.TrimPrefix(msg.Subject(), SubjectPrefix)
	occurredAt := time.Now()
	if h := msg.Headers(); h != nil {
		if t := h.Get(headerEventType); t != "" {
			eventType = t
		}
		if ts, err := time.Parse(timeLayout, h.Get(headerOccurredAt)); err == nil {
			occurredAt = ts
		}
	}

	return events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: occurredAt,
	}, nil
}
