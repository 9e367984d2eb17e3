package events

import (
	"context"
	"time"

	"mindcare-be/internal/pkg/logger"

	"github.com/google/uuid"
)

const (
	TypeChatTurnCompleted   = "CHAT_TURN_COMPLETED"
	TypeQValueUpdated       = "QVALUE_UPDATED"
	TypeQValuePersistFailed = "QVALUE_PERSIST_FAILED"
)

// Sink is anything that can put an event on the bus.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher abstracts event publishing for chat operations
type Publisher interface {
	PublishChatTurnCompleted(ctx context.Context, sessionId, category string, inQuestionnaire bool, questionnaireIndex int)
	PublishQValueUpdated(ctx context.Context, category, reply string, reward int, value float64)
	PublishQValuePersistFailed(ctx context.Context, category, reply string, cause error)
}

// BusPublisher implements Publisher on top of a Sink. A nil sink turns
// every call into a no-op.
type BusPublisher struct {
	sink   Sink
	logger logger.ILogger
}

func NewBusPublisher(sink Sink, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		sink:   sink,
		logger: logger,
	}
}

// PublishChatTurnCompleted emits CHAT_TURN_COMPLETED after every routed turn
func (p *BusPublisher) PublishChatTurnCompleted(ctx context.Context, sessionId, category string, inQuestionnaire bool, questionnaireIndex int) {
	p.publish(ctx, TypeChatTurnCompleted, map[string]interface{}{
		"session_id":          sessionId,
		"category":            category,
		"in_questionnaire":    inQuestionnaire,
		"questionnaire_index": questionnaireIndex,
		"entity_type":         "session",
		"entity_id":           sessionId,
	})
}

// PublishQValueUpdated emits QVALUE_UPDATED for each learning step
func (p *BusPublisher) PublishQValueUpdated(ctx context.Context, category, reply string, reward int, value float64) {
	p.publish(ctx, TypeQValueUpdated, map[string]interface{}{
		"category":    category,
		"reply":       reply,
		"reward":      reward,
		"q_value":     value,
		"entity_type": "candidate_set",
		"entity_id":   category,
	})
}

// PublishQValuePersistFailed emits QVALUE_PERSIST_FAILED when a flush errors
func (p *BusPublisher) PublishQValuePersistFailed(ctx context.Context, category, reply string, cause error) {
	data := map[string]interface{}{
		"category":    category,
		"reply":       reply,
		"entity_type": "candidate_set",
		"entity_id":   category,
	}
	if cause != nil {
		data["error"] = cause.Error()
	}
	p.publish(ctx, TypeQValuePersistFailed, data)
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.sink == nil {
		return
	}

	now := time.Now()
	data["event_id"] = uuid.NewString()
	data["occurred_at"] = now

	evt := BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
