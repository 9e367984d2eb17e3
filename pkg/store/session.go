package store

import (
	"sync"
	"time"

	"mindcare-be/pkg/questionnaire"
)

// Speaker identifies who produced a turn in the transcript.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Last category tags that are not classifier categories.
const (
	CategoryFAQ             = "faq"
	CategoryGreeting        = "greeting"
	CategoryAnxietyFollowup = "anxiety_followup"
	CategoryStressFollowup  = "stress_followup"
	CategoryGeneral         = "general"
	CategoryDefault         = "default"
)

// Turn is one transcript entry
type Turn struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Session represents the active conversation state in memory
type Session struct {
	ID string `json:"id"`

	// LastCategory is the tag of the previous bot reply ("" before the first one).
	LastCategory string `json:"last_category"`
	// LastReply is the last adaptive reply the bot selected.
	LastReply string `json:"last_reply"`

	Questionnaire questionnaire.Flow `json:"questionnaire"`

	// FallbackCount counts consecutive turns nothing was recognized.
	FallbackCount int `json:"fallback_count"`

	// History is append-only and never read by routing logic.
	History []Turn `json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	mu sync.Mutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lock serializes turns on the same session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Record appends a transcript entry.
func (s *Session) Record(speaker Speaker, text string) {
	now := time.Now()
	s.History = append(s.History, Turn{Speaker: speaker, Text: text, At: now})
	s.UpdatedAt = now
}

// Transcript returns a copy of the history.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.History))
	copy(out, s.History)
	return out
}

func (s *Session) InQuestionnaire() bool {
	return s.Questionnaire.Active
}
