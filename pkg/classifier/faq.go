package classifier

import (
	"regexp"
	"strings"
)

const (
	answerCapabilities = "I can chat with you about how you're feeling, offer support for emotions like anxiety or stress, and even administer the DASS-21 questionnaire to help assess depression, anxiety, and stress levels. Just type 'DASS-21' if you'd like to take the assessment."
	answerIdentity     = "I'm a mental health chatbot designed to provide supportive conversations and basic assessments. I use reinforcement learning to improve my responses over time."
	answerMechanism    = "I analyze your messages for emotional content and try to provide supportive responses. I can recognize feelings like anxiety, stress, sadness, and happiness, and offer appropriate support. I also learn from our interactions to improve over time."
	answerDASS21       = "The DASS-21 is a 21-item questionnaire that measures symptoms of depression, anxiety, and stress. It's a shorter version of the DASS-42. It's not a diagnostic tool, but it can help identify symptoms that might warrant professional attention. Type 'DASS-21' if you'd like to take it."
	answerHelp         = "I can help by chatting about your feelings, offering supportive responses, or administering the DASS-21 assessment. Just tell me how you're feeling or what's on your mind. Type 'DASS-21' if you'd like to take the assessment."
)

type faqEntry struct {
	phrase string
	answer string
}

type faqIntent struct {
	name     string
	patterns []*regexp.Regexp
	phrases  []string
	answer   string
}

// FAQTable resolves common questions. Exact phrases are tried first, in table
// order, then the intent patterns.
type FAQTable struct {
	entries []faqEntry
	intents []faqIntent
}

func NewFAQ() *FAQTable {
	return &FAQTable{
		entries: []faqEntry{
			{"what can you do", answerCapabilities},
			{"who made you", answerIdentity},
			{"how does this work", answerMechanism},
			{"what is dass21", answerDASS21},
			{"help", answerHelp},
		},
		intents: []faqIntent{
			{
				name: "capabilities",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`what (can|do) you do`),
					regexp.MustCompile(`how (can|do) you help`),
				},
				answer: answerCapabilities,
			},
			{
				name:     "identity",
				patterns: []*regexp.Regexp{regexp.MustCompile(`who (made|created|developed) you`)},
				phrases:  []string{"who are you"},
				answer:   answerIdentity,
			},
			{
				name:     "mechanism",
				patterns: []*regexp.Regexp{regexp.MustCompile(`how (does|do) (this|you|it) work`)},
				answer:   answerMechanism,
			},
			{
				name:     "what-is-dass21",
				patterns: []*regexp.Regexp{regexp.MustCompile(`what is (dass|dass21|dass-21)`)},
				phrases:  []string{"depression test"},
				answer:   answerDASS21,
			},
		},
	}
}

// Lookup returns the first matching answer.
func (f *FAQTable) Lookup(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, e := range f.entries {
		if strings.Contains(lower, e.phrase) {
			return e.answer, true
		}
	}

	for _, intent := range f.intents {
		for _, p := range intent.patterns {
			if p.MatchString(lower) {
				return intent.answer, true
			}
		}
		if containsAny(lower, intent.phrases) {
			return intent.answer, true
		}
	}
	return "", false
}
