package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReward(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		text string
		want int
	}{
		{"I feel great today", 1},
		{"thanks, that helped", 1},
		{"I'm so sad", -1},
		{"no", -1},
		{"not really", 0},
		{"I am not happy", -1},
		{"I don't feel good", -1},
		{"the meeting is at noon", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Reward(tt.text))
		})
	}
}

func TestCompoundMatchesVader(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		text string
		want float64
	}{
		{"The book was good.", 0.4404},
		{"At least it isn't a horrible book.", 0.431},
		{"Not bad at all", 0.431},
		{"Sentiment analysis has never been good.", -0.3412},
		{"Other sentiment analysis tools can be quite bad.", -0.5849},
		{"Roger Dodger is one of the least compelling variations on this theme.", -0.1695},
		{"The plot was good, but the characters are uncompelling and the dialog is not great.", -0.7042},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			// reference scores are rounded to four places
			assert.InDelta(t, tt.want, a.Compound(tt.text), 5e-4)
		})
	}
}

func TestRewardThresholds(t *testing.T) {
	a := NewAnalyzer()

	// compound -0.1695 sits just past the negative threshold
	assert.Equal(t, -1, a.Reward("Roger Dodger is one of the least compelling variations on this theme."))
	assert.Equal(t, 1, a.Reward("Not bad at all"))
	assert.Equal(t, 0, a.Reward("   "))
}

func TestCompoundIsBounded(t *testing.T) {
	a := NewAnalyzer()

	for _, text := range []string{
		"great great great great great great great great great!!!!!!!",
		"awful terrible horrible worst worst worst!!!!",
	} {
		c := a.Compound(text)
		assert.LessOrEqual(t, c, 1.0)
		assert.GreaterOrEqual(t, c, -1.0)
	}
}

func TestBoostersAndContrast(t *testing.T) {
	a := NewAnalyzer()

	assert.Greater(t, a.Compound("very happy"), a.Compound("happy"))
	assert.Less(t, a.Compound("very sad"), a.Compound("sad"))
	assert.Greater(t, a.Compound("happy!!"), a.Compound("happy"))

	// the clause after "but" dominates
	assert.Less(t, a.Compound("it was good but I feel awful"), 0.0)
	assert.Greater(t, a.Compound("it was awful but now I feel good"), 0.0)
}
