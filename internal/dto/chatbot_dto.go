package dto

import (
	"time"

	"mindcare-be/pkg/questionnaire"
)

type CreateSessionResponse struct {
	Id string `json:"id"`
}

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,max=128"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type SendChatResponse struct {
	SessionId          string                `json:"session_id"`
	Reply              string                `json:"reply"`
	Category           string                `json:"category"`
	Rule               string                `json:"rule"`
	InQuestionnaire    bool                  `json:"in_questionnaire"`
	QuestionnaireIndex int                   `json:"questionnaire_index"`
	Assessment         *questionnaire.Result `json:"assessment,omitempty"`
}

type ChatTurnResponse struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

type QValuesResponse struct {
	Version uint64                        `json:"version"`
	Sets    map[string]map[string]float64 `json:"sets"`
}

type AuditEntryResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Type      string                 `json:"type"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type AuditQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=CHAT_TURN_COMPLETED QVALUE_UPDATED QVALUE_PERSIST_FAILED"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
