package service

import (
	"context"
	"errors"
	"strings"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/dialogue"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrSessionNotFound = errors.New("session not found")

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, sessionId string) ([]*dto.ChatTurnResponse, error)
	GetQValues(ctx context.Context) (*dto.QValuesResponse, error)
}

// chatbotService owns session lifecycle around the dialogue router
type chatbotService struct {
	sessions  *session.Manager
	router    *dialogue.Router
	qvalues   *bandit.Store
	publisher events.Publisher
	logger    logger.ILogger
	tracer    trace.Tracer
}

func NewChatbotService(
	sessions *session.Manager,
	router *dialogue.Router,
	qvalues *bandit.Store,
	publisher events.Publisher,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessions:  sessions,
		router:    router,
		qvalues:   qvalues,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer("mindcare-be/chatbot"),
	}
}

func (s *chatbotService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sess := s.sessions.Create()
	s.logger.Info("CHATBOT", "Session created", map[string]interface{}{"session_id": sess.ID})
	return &dto.CreateSessionResponse{Id: sess.ID}, nil
}

// SendChat runs one turn. Turns on the same session are serialized; an
// unknown or expired id starts a fresh session under that id.
func (s *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ChatbotService.SendChat")
	defer span.End()

	sess, created := s.sessions.LoadOrCreate(request.SessionId)
	if created {
		s.logger.Info("CHATBOT", "Session created", map[string]interface{}{"session_id": sess.ID})
	}

	sess.Lock()
	defer sess.Unlock()

	res, err := s.router.Handle(ctx, sess, strings.TrimSpace(request.Message))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "routing failed")
		s.logger.Error("CHATBOT", "Failed to route turn", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return nil, err
	}
	s.sessions.Save(sess)

	span.SetAttributes(
		attribute.String("chat.session_id", sess.ID),
		attribute.String("chat.rule", res.Rule),
		attribute.String("chat.category", res.Category),
		attribute.Bool("chat.session_created", created),
	)
	s.publisher.PublishChatTurnCompleted(ctx, sess.ID, res.Category, sess.InQuestionnaire(), sess.Questionnaire.Index)

	return &dto.SendChatResponse{
		SessionId:          sess.ID,
		Reply:              res.Reply,
		Category:           res.Category,
		Rule:               res.Rule,
		InQuestionnaire:    sess.InQuestionnaire(),
		QuestionnaireIndex: sess.Questionnaire.Index,
		Assessment:         res.Assessment,
	}, nil
}

func (s *chatbotService) GetHistory(ctx context.Context, sessionId string) ([]*dto.ChatTurnResponse, error) {
	sess, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.Lock()
	turns := sess.Transcript()
	sess.Unlock()

	res := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, t := range turns {
		res = append(res, &dto.ChatTurnResponse{
			Speaker: string(t.Speaker),
			Text:    t.Text,
			At:      t.At,
		})
	}
	return res, nil
}

func (s *chatbotService) GetQValues(ctx context.Context) (*dto.QValuesResponse, error) {
	snapshot := s.qvalues.Snapshot()
	return &dto.QValuesResponse{
		Version: snapshot.Version,
		Sets:    snapshot.Sets,
	}, nil
}
