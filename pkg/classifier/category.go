package classifier

import "strings"

// Category is the tag assigned to an utterance.
type Category string

const (
	None          Category = "none"
	Positive      Category = "positive"
	Sad           Category = "sad"
	Anxiety       Category = "anxiety"
	Stress        Category = "stress"
	Questionnaire Category = "dass21"
	NegativeAck   Category = "negative_ack"
	FAQ           Category = "faq"
	Greeting      Category = "greeting"
)

var (
	positiveKeywords = []string{
		"happy", "good mood", "great", "excellent", "wonderful", "joyful", "fantastic",
		"feeling good", "feeling better", "cheerful", "positive", "upbeat", "content",
	}
	sadKeywords = []string{
		"sad", "unhappy", "depressed", "down", "blue", "miserable", "upset",
		"gloomy", "heartbroken", "disappointed", "sorrowful", "hurt",
	}
	anxietyKeywords = []string{
		"anxiety", "anxious", "nervous", "panic", "worried", "fear", "tense", "worry", "afraid",
		"uneasy", "apprehensive", "frightened", "scared",
	}
	stressKeywords = []string{
		"stress", "stressed", "stressful", "pressure", "overwhelm", "overwhelmed",
		"burnt out", "burnout", "tension", "exhausted", "overworked", "too much",
	}
	negativeAcks = []string{
		"no", "nope", "don't want to", "not really", "not interested", "haven't",
	}
	questionnaireTriggers = []string{
		"dass", "dass21", "dass-21", "depression test", "anxiety test", "stress test",
		"mental health test", "assessment", "questionnaire", "test me",
	}
	greetings = []string{"hi", "hello", "hey"}
)

// emotions is checked in priority order; the first matching set wins.
var emotions = []struct {
	category Category
	keywords []string
}{
	{Positive, positiveKeywords},
	{Sad, sadKeywords},
	{Anxiety, anxietyKeywords},
	{Stress, stressKeywords},
}

// Keyword is the keyword-set and pattern classifier. All checks are
// case-insensitive substring tests except greetings, which must match the
// whole utterance.
type Keyword struct {
	faq *FAQTable
}

func NewKeyword() *Keyword {
	return &Keyword{faq: NewFAQ()}
}

// Classify returns the category the router would act on first, ignoring
// conversation state.
func (k *Keyword) Classify(text string) Category {
	switch {
	case k.IsQuestionnaireTrigger(text):
		return Questionnaire
	case k.hasFAQ(text):
		return FAQ
	case k.IsGreeting(text):
		return Greeting
	}
	if c := k.Emotion(text); c != None {
		return c
	}
	if k.IsNegativeAck(text) {
		return NegativeAck
	}
	return None
}

// Emotion returns the first of positive, sad, anxiety, stress whose
// keywords appear in text.
func (k *Keyword) Emotion(text string) Category {
	lower := strings.ToLower(text)
	for _, e := range emotions {
		if containsAny(lower, e.keywords) {
			return e.category
		}
	}
	return None
}

func (k *Keyword) IsQuestionnaireTrigger(text string) bool {
	return containsAny(strings.ToLower(text), questionnaireTriggers)
}

func (k *Keyword) IsNegativeAck(text string) bool {
	return containsAny(strings.ToLower(text), negativeAcks)
}

func (k *Keyword) IsGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, g := range greetings {
		if lower == g {
			return true
		}
	}
	return false
}

// FAQ returns the canned answer for text, if any.
func (k *Keyword) FAQ(text string) (string, bool) {
	return k.faq.Lookup(text)
}

func (k *Keyword) hasFAQ(text string) bool {
	_, ok := k.faq.Lookup(text)
	return ok
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
