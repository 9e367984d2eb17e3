package service

import (
	"context"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/events"
	pktNats "mindcare-be/pkg/nats"
)

const auditModule = "AUDIT"

type IAuditService interface {
	List(ctx context.Context, query *dto.AuditQuery) ([]*dto.AuditEntryResponse, error)
}

// AuditService writes every domain event to the isolated audit log. It is
// fed either by a NATS subscription or directly as an in-process sink.
type AuditService struct {
	subscriber *pktNats.Subscriber
	auditLog   logger.ILogger
	path       string
	logger     logger.ILogger
	stop       func()
}

func NewAuditService(subscriber *pktNats.Subscriber, auditLog logger.ILogger, path string, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: subscriber,
		auditLog:   auditLog,
		path:       path,
		logger:     log,
	}
}

// Start begins listening to the event bus. It is a no-op without a subscriber.
func (s *AuditService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}
	stop, err := s.subscriber.Subscribe(ctx, pktNats.AllSubjects, "mindcare-audit", s.Publish)
	if err != nil {
		return err
	}
	s.stop = stop
	s.logger.Info("AuditService", "Audit service started, listening to "+pktNats.AllSubjects, nil)
	return nil
}

func (s *AuditService) Stop() {
	if s.stop != nil {
		s.stop()
	}
}

// Publish records the event. It satisfies events.Sink so the service can
// stand in for the bus when NATS is disabled.
func (s *AuditService) Publish(ctx context.Context, event events.Event) error {
	details := make(map[string]interface{}, len(event.Payload())+1)
	for k, v := range event.Payload() {
		details[k] = v
	}
	details["occurred_at"] = event.Timestamp()

	s.auditLog.Info(auditModule, event.EventType(), details)
	return nil
}

func (s *AuditService) List(ctx context.Context, query *dto.AuditQuery) ([]*dto.AuditEntryResponse, error) {
	limit := query.Limit
	if limit == 0 {
		limit = 50
	}

	entries, err := logger.ReadEntries(s.path, auditModule, query.Type, limit, query.Offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, &dto.AuditEntryResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Type:      e.Message,
			Details:   e.Details,
		})
	}
	return res, nil
}
