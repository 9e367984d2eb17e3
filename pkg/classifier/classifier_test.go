package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmotionPriority(t *testing.T) {
	k := NewKeyword()

	tests := []struct {
		text string
		want Category
	}{
		{"I feel happy today", Positive},
		{"I'm sad and anxious", Sad},
		{"happy but also sad", Positive},
		{"so nervous about tomorrow", Anxiety},
		{"work is stressful and I'm worried", Anxiety},
		{"I'm completely overwhelmed", Stress},
		{"BURNT OUT", Stress},
		{"the weather is fine", None},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Emotion(tt.text))
		})
	}
}

func TestGreetingIsWholeUtterance(t *testing.T) {
	k := NewKeyword()

	assert.True(t, k.IsGreeting("hi"))
	assert.True(t, k.IsGreeting("Hello"))
	assert.True(t, k.IsGreeting("HEY"))
	assert.False(t, k.IsGreeting("hi there"))
	assert.False(t, k.IsGreeting("hey!"))
}

func TestQuestionnaireTrigger(t *testing.T) {
	k := NewKeyword()

	for _, text := range []string{"DASS-21", "dass21", "can I take an assessment", "test me please", "Mental health test"} {
		assert.True(t, k.IsQuestionnaireTrigger(text), text)
	}
	assert.False(t, k.IsQuestionnaireTrigger("I passed my exam"))
}

func TestNegativeAck(t *testing.T) {
	k := NewKeyword()

	for _, text := range []string{"no", "Nope", "not really", "I don't want to", "haven't tried"} {
		assert.True(t, k.IsNegativeAck(text), text)
	}
	assert.False(t, k.IsNegativeAck("yes please"))
}

func TestFAQLookup(t *testing.T) {
	f := NewFAQ()

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"exact phrase", "So, what can you do?", answerCapabilities, true},
		{"help substring", "I need help", answerHelp, true},
		{"exact wins over pattern order", "who made you and how does this work", answerIdentity, true},
		{"capabilities pattern", "so what do you do all day", answerCapabilities, true},
		{"help phrase wins over pattern", "how can you help me", answerHelp, true},
		{"identity pattern", "who created you", answerIdentity, true},
		{"identity phrase", "Who are you?", answerIdentity, true},
		{"mechanism pattern", "how do you work", answerMechanism, true},
		{"dass pattern", "what is dass-21 exactly", answerDASS21, true},
		{"dass phrase", "is this a depression test", answerDASS21, true},
		{"no match", "tell me a joke", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Lookup(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	k := NewKeyword()

	assert.Equal(t, Questionnaire, k.Classify("what is dass21"))
	assert.Equal(t, FAQ, k.Classify("who are you"))
	assert.Equal(t, Greeting, k.Classify("hi"))
	assert.Equal(t, Stress, k.Classify("so much pressure"))
	assert.Equal(t, NegativeAck, k.Classify("nope"))
	assert.Equal(t, None, k.Classify("the sky"))
}
