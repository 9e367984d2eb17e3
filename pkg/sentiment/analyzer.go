// Package sentiment scores the valence of an utterance and turns it into
// the {-1, 0, +1} reward used by the response selector.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// RewardThreshold is the compound magnitude needed for a non-zero reward.
const RewardThreshold = 0.05

// Analyzer wraps the VADER lexicon and rule based scorer. The underlying
// analyzer only reads its lexicon after construction, so one Analyzer is
// shared by every session.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the normalized VADER valence in [-1, 1].
func (a *Analyzer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}

// Reward maps the compound score onto {-1, 0, +1}.
func (a *Analyzer) Reward(text string) int {
	c := a.Compound(text)
	switch {
	case c >= RewardThreshold:
		return 1
	case c <= -RewardThreshold:
		return -1
	default:
		return 0
	}
}
