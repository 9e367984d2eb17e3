package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// AsyncFlusher hands snapshots to the flush consumer over the message bus
// instead of writing them on the request path.
type AsyncFlusher struct {
	publisher message.Publisher
	topic     string
}

func NewAsyncFlusher(publisher message.Publisher, topic string) *AsyncFlusher {
	return &AsyncFlusher{publisher: publisher, topic: topic}
}

func (f *AsyncFlusher) Flush(ctx context.Context, snapshot bandit.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("version", fmt.Sprint(snapshot.Version))
	if err := f.publisher.Publish(f.topic, msg); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

type IFlushConsumerService interface {
	Consume(ctx context.Context) error
}

// flushConsumerService persists snapshots in arrival order. The write-through
// flusher drops any snapshot older than the last one written.
type flushConsumerService struct {
	subscriber message.Subscriber
	topic      string
	flusher    *bandit.WriteThrough
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewFlushConsumerService(
	subscriber message.Subscriber,
	topic string,
	flusher *bandit.WriteThrough,
	publisher events.Publisher,
	logger logger.ILogger,
) IFlushConsumerService {
	return &flushConsumerService{
		subscriber: subscriber,
		topic:      topic,
		flusher:    flusher,
		publisher:  publisher,
		logger:     logger,
	}
}

func (cs *flushConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *flushConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var snapshot bandit.Snapshot
	if err := json.Unmarshal(msg.Payload, &snapshot); err != nil {
		cs.logger.Error("QVALUE", "Failed to unmarshal snapshot", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	// A failed write is not retried: the next update carries a newer snapshot.
	if err := cs.flusher.Flush(ctx, snapshot); err != nil {
		cs.logger.Error("QVALUE", "Failed to persist q-values", map[string]interface{}{
			"version": snapshot.Version,
			"error":   err.Error(),
		})
		cs.publisher.PublishQValuePersistFailed(ctx, "", "", err)
	}
	msg.Ack()
}
