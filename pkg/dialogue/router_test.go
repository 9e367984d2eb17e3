package dialogue

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/classifier"
	"mindcare-be/pkg/questionnaire"
	"mindcare-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedReward int

func (f fixedReward) Reward(string) int { return int(f) }

type failingFlusher struct{}

func (failingFlusher) Flush(context.Context, bandit.Snapshot) error {
	return errors.New("disk full")
}

type recordingPublisher struct {
	mu            sync.Mutex
	updated       []string
	persistFailed []string
}

func (p *recordingPublisher) PublishChatTurnCompleted(context.Context, string, string, bool, int) {}

func (p *recordingPublisher) PublishQValueUpdated(_ context.Context, category, reply string, reward int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, category)
}

func (p *recordingPublisher) PublishQValuePersistFailed(_ context.Context, category, reply string, cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persistFailed = append(p.persistFailed, category)
}

type fixture struct {
	router    *Router
	store     *bandit.Store
	publisher *recordingPublisher
	session   *store.Session
}

func newFixture(t *testing.T, reward int, flusher bandit.Flusher) *fixture {
	t.Helper()

	selector, err := bandit.NewSelector(0, bandit.DefaultLearningRate, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	qvalues, err := bandit.NewStore(selector, flusher, DefaultCandidateSets()...)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	r := NewRouter(classifier.NewKeyword(), fixedReward(reward), qvalues, pub, logger.NewNopLogger())

	return &fixture{
		router:    r,
		store:     qvalues,
		publisher: pub,
		session:   store.NewSession("test-session"),
	}
}

func (f *fixture) send(t *testing.T, text string) *Result {
	t.Helper()
	res, err := f.router.Handle(context.Background(), f.session, text)
	require.NoError(t, err)
	return res
}

func repliesOf(name string) []string {
	for _, set := range DefaultCandidateSets() {
		if set.Name == name {
			return set.Replies()
		}
	}
	return nil
}

func TestRuleOrder(t *testing.T) {
	f := newFixture(t, 0, nil)
	assert.Equal(t, []string{
		RuleQuestionnaire,
		RuleQuestionnaireStart,
		RuleFAQ,
		RuleFollowup,
		RuleGreeting,
		RuleEmotion,
		RuleFallback,
	}, f.router.Rules())
}

func TestDefaultCandidateSetsAreValid(t *testing.T) {
	sets := DefaultCandidateSets()
	require.Len(t, sets, 7)
	for _, set := range sets {
		assert.Equal(t, 5, set.Len(), set.Name)
	}
}

func TestQuestionnaireRunWithAllZeros(t *testing.T) {
	f := newFixture(t, 0, nil)

	res := f.send(t, "DASS-21")
	assert.Equal(t, RuleQuestionnaireStart, res.Rule)
	assert.Contains(t, res.Reply, "Question 1/21")
	assert.True(t, f.session.InQuestionnaire())
	assert.Equal(t, 0, f.session.Questionnaire.Index)

	for i := 0; i < questionnaire.ItemCount-1; i++ {
		res = f.send(t, "0")
		assert.Equal(t, RuleQuestionnaire, res.Rule)
		assert.Contains(t, res.Reply, fmt.Sprintf("Question %d/21", i+2))
		assert.Nil(t, res.Assessment)
	}

	res = f.send(t, "0")
	require.NotNil(t, res.Assessment)
	assert.Equal(t, 0, res.Assessment.Depression)
	assert.Equal(t, 0, res.Assessment.Anxiety)
	assert.Equal(t, 0, res.Assessment.Stress)
	assert.Equal(t, questionnaire.Normal, res.Assessment.DepressionLevel)
	assert.Equal(t, questionnaire.Normal, res.Assessment.AnxietyLevel)
	assert.Equal(t, questionnaire.Normal, res.Assessment.StressLevel)
	assert.Contains(t, res.Reply, "not a clinical diagnosis")

	assert.False(t, f.session.InQuestionnaire())
	assert.Equal(t, questionnaire.Idle, f.session.Questionnaire.State())
}

func TestQuestionnairePreemptsOtherRules(t *testing.T) {
	f := newFixture(t, 0, nil)
	f.send(t, "take the questionnaire")
	f.send(t, "2")

	for _, text := range []string{"hello", "what can you do", "I feel sad", "DASS-21"} {
		res := f.send(t, text)
		assert.Equal(t, RuleQuestionnaire, res.Rule, text)
		assert.Equal(t, questionnaire.ClarifyPrompt(), res.Reply, text)
		assert.Equal(t, 1, f.session.Questionnaire.Index, text)
		assert.Equal(t, 2, f.session.Questionnaire.Scores.Depression, text)
	}

	res := f.send(t, "7")
	assert.Equal(t, questionnaire.RangePrompt(), res.Reply)
	assert.Equal(t, 1, f.session.Questionnaire.Index)
}

func TestQuestionnaireStartResetsFallbackCounter(t *testing.T) {
	f := newFixture(t, 0, nil)
	f.send(t, "qwerty")
	f.send(t, "zzz")
	require.Equal(t, 2, f.session.FallbackCount)

	f.send(t, "dass")
	assert.Equal(t, 0, f.session.FallbackCount)
	assert.Equal(t, store.CategoryDefault, f.session.LastCategory)
}

func TestNegativeAckAfterAnxietyUsesFollowups(t *testing.T) {
	f := newFixture(t, 0, nil)

	res := f.send(t, "I feel anxious")
	assert.Equal(t, RuleEmotion, res.Rule)
	assert.Contains(t, repliesOf(SetAnxiety), res.Reply)
	assert.Equal(t, string(classifier.Anxiety), f.session.LastCategory)

	res = f.send(t, "no")
	assert.Equal(t, RuleFollowup, res.Rule)
	assert.Contains(t, repliesOf(SetAnxietyFollowups), res.Reply)
	assert.NotContains(t, repliesOf(SetAnxiety), res.Reply)
	assert.Equal(t, store.CategoryAnxietyFollowup, f.session.LastCategory)
	assert.Equal(t, res.Reply, f.session.LastReply)
}

func TestNegativeAckAfterStressUsesFollowups(t *testing.T) {
	f := newFixture(t, 0, nil)
	f.send(t, "so much pressure at work")

	res := f.send(t, "not really")
	assert.Equal(t, RuleFollowup, res.Rule)
	assert.Contains(t, repliesOf(SetStressFollowups), res.Reply)
	assert.Equal(t, store.CategoryStressFollowup, f.session.LastCategory)
}

func TestNegativeAckWithoutAnxietyOrStressFallsBack(t *testing.T) {
	f := newFixture(t, 0, nil)
	f.send(t, "I feel sad")

	res := f.send(t, "no")
	assert.Equal(t, RuleFallback, res.Rule)
	assert.Equal(t, DefaultMessage, res.Reply)
}

func TestThirdUnclassifiedTurnUsesGeneralSet(t *testing.T) {
	f := newFixture(t, 0, nil)

	res := f.send(t, "qwerty")
	assert.Equal(t, DefaultMessage, res.Reply)
	res = f.send(t, "lorem ipsum")
	assert.Equal(t, DefaultMessage, res.Reply)
	assert.Equal(t, 2, f.session.FallbackCount)

	res = f.send(t, "zzz")
	assert.Equal(t, RuleFallback, res.Rule)
	assert.Contains(t, repliesOf(SetGeneral), res.Reply)
	assert.Equal(t, store.CategoryGeneral, f.session.LastCategory)
	assert.Equal(t, 3, f.session.FallbackCount)

	res = f.send(t, "zzz")
	assert.Contains(t, repliesOf(SetGeneral), res.Reply)
	assert.Equal(t, 4, f.session.FallbackCount)
}

func TestStaticRulesResetCounterWithoutLearning(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rule     string
		category string
	}{
		{"greeting", "Hello", RuleGreeting, store.CategoryGreeting},
		{"faq", "what can you do?", RuleFAQ, store.CategoryFAQ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1, nil)
			f.send(t, "qwerty")
			f.send(t, "zzz")

			res := f.send(t, tt.text)
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.category, f.session.LastCategory)
			assert.Equal(t, 0, f.session.FallbackCount)
			assert.Equal(t, uint64(0), f.store.Snapshot().Version)
			assert.Empty(t, f.publisher.updated)
		})
	}
}

func TestGreetingMustBeWholeUtterance(t *testing.T) {
	f := newFixture(t, 0, nil)
	res := f.send(t, "hi there")
	assert.Equal(t, RuleFallback, res.Rule)
}

func TestEmotionPriority(t *testing.T) {
	f := newFixture(t, 0, nil)
	res := f.send(t, "I'm happy but also stressed")
	assert.Equal(t, string(classifier.Positive), res.Category)
	assert.Contains(t, repliesOf(SetPositive), res.Reply)
}

func TestAdaptiveTurnCreditsSelectedReply(t *testing.T) {
	f := newFixture(t, 1, nil)

	res := f.send(t, "I feel sad")
	q, ok := f.store.Value(SetSad, res.Reply)
	require.True(t, ok)
	assert.InDelta(t, 0.1, q, 1e-9)
	assert.Equal(t, []string{SetSad}, f.publisher.updated)

	// greedy keeps the credited reply on top
	again := f.send(t, "still sad")
	assert.Equal(t, res.Reply, again.Reply)
}

func TestNegativeRewardMovesGreedyChoice(t *testing.T) {
	f := newFixture(t, -1, nil)

	first := f.send(t, "I feel sad")
	second := f.send(t, "I feel sad")
	assert.NotEqual(t, first.Reply, second.Reply)
	assert.Equal(t, repliesOf(SetSad)[1], second.Reply)
}

func TestPersistFailureDoesNotFailTurn(t *testing.T) {
	f := newFixture(t, 1, failingFlusher{})

	res := f.send(t, "I feel anxious")
	assert.Contains(t, repliesOf(SetAnxiety), res.Reply)

	q, _ := f.store.Value(SetAnxiety, res.Reply)
	assert.InDelta(t, 0.1, q, 1e-9)
	assert.Equal(t, []string{SetAnxiety}, f.publisher.persistFailed)
	assert.Equal(t, []string{SetAnxiety}, f.publisher.updated)
}

func TestEveryTurnRecordsUserAndBot(t *testing.T) {
	f := newFixture(t, 0, nil)
	inputs := []string{"hi", "I feel anxious", "no", "DASS-21", "banana"}

	for i, text := range inputs {
		res := f.send(t, text)
		history := f.session.Transcript()
		require.Len(t, history, 2*(i+1))
		assert.Equal(t, store.SpeakerUser, history[2*i].Speaker)
		assert.Equal(t, text, history[2*i].Text)
		assert.Equal(t, store.SpeakerBot, history[2*i+1].Speaker)
		assert.Equal(t, res.Reply, history[2*i+1].Text)
	}
}
