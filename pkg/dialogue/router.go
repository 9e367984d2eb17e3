// Package dialogue decides the bot's reply for one turn of a conversation.
package dialogue

import (
	"context"
	"errors"
	"fmt"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/classifier"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/questionnaire"
	"mindcare-be/pkg/store"
)

// Rule names in evaluation order.
const (
	RuleQuestionnaire      = "questionnaire"
	RuleQuestionnaireStart = "questionnaire_start"
	RuleFAQ                = "faq"
	RuleFollowup           = "followup"
	RuleGreeting           = "greeting"
	RuleEmotion            = "emotion"
	RuleFallback           = "fallback"
)

// Classifier tags raw text. Every check is a pure function of the text.
type Classifier interface {
	IsQuestionnaireTrigger(text string) bool
	FAQ(text string) (string, bool)
	IsNegativeAck(text string) bool
	IsGreeting(text string) bool
	Emotion(text string) classifier.Category
}

// RewardEstimator maps text onto {-1, 0, +1}.
type RewardEstimator interface {
	Reward(text string) int
}

// QValues is the adaptive reply table.
type QValues interface {
	Select(name string) (string, error)
	Update(ctx context.Context, name, reply string, reward float64) (float64, error)
}

// Result is the outcome of one turn
type Result struct {
	Reply    string
	Rule     string
	Category string
	// Assessment is set on the turn that completes a questionnaire run.
	Assessment *questionnaire.Result
}

var emotionSets = map[classifier.Category]string{
	classifier.Positive: SetPositive,
	classifier.Sad:      SetSad,
	classifier.Anxiety:  SetAnxiety,
	classifier.Stress:   SetStress,
}

var followupSets = map[string]struct {
	set      string
	category string
}{
	string(classifier.Anxiety): {SetAnxietyFollowups, store.CategoryAnxietyFollowup},
	string(classifier.Stress):  {SetStressFollowups, store.CategoryStressFollowup},
}

// turn carries per-call state through the rules.
type turn struct {
	ctx     context.Context
	session *store.Session
	text    string

	emotion   classifier.Category
	faqAnswer string

	reward   int
	rewarded bool
}

type rule struct {
	name   string
	match  func(t *turn) bool
	handle func(t *turn) (Result, error)
}

// Router evaluates an ordered rule list; the first matching rule produces
// the turn's only reply.
type Router struct {
	classifier Classifier
	estimator  RewardEstimator
	qvalues    QValues
	publisher  events.Publisher
	logger     logger.ILogger
	rules      []rule
}

// NewRouter wires the rule list. publisher may be nil.
func NewRouter(
	classifier Classifier,
	estimator RewardEstimator,
	qvalues QValues,
	publisher events.Publisher,
	logger logger.ILogger,
) *Router {
	if publisher == nil {
		publisher = events.NewBusPublisher(nil, logger)
	}

	r := &Router{
		classifier: classifier,
		estimator:  estimator,
		qvalues:    qvalues,
		publisher:  publisher,
		logger:     logger,
	}
	r.rules = []rule{
		{RuleQuestionnaire, r.inQuestionnaire, r.answerQuestionnaire},
		{RuleQuestionnaireStart, r.wantsQuestionnaire, r.startQuestionnaire},
		{RuleFAQ, r.isFAQ, r.answerFAQ},
		{RuleFollowup, r.isFollowup, r.followup},
		{RuleGreeting, r.isGreeting, r.greet},
		{RuleEmotion, r.hasEmotion, r.respondToEmotion},
		{RuleFallback, always, r.fallback},
	}
	return r
}

// Rules returns the rule names in evaluation order.
func (r *Router) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.name
	}
	return names
}

// Handle runs one turn against session. The caller must hold the session
// lock. Both the user text and the reply are appended to the history.
func (r *Router) Handle(ctx context.Context, session *store.Session, text string) (*Result, error) {
	session.Record(store.SpeakerUser, text)

	t := &turn{ctx: ctx, session: session, text: text}
	for _, rl := range r.rules {
		if !rl.match(t) {
			continue
		}

		res, err := rl.handle(t)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rl.name, err)
		}
		res.Rule = rl.name
		session.Record(store.SpeakerBot, res.Reply)

		r.logger.Debug("ROUTER", "Turn routed", map[string]interface{}{
			"session_id": session.ID,
			"rule":       rl.name,
			"category":   res.Category,
		})
		return &res, nil
	}

	// the fallback rule always matches
	return nil, errors.New("dialogue: no rule matched")
}

func always(*turn) bool { return true }

func (r *Router) inQuestionnaire(t *turn) bool {
	return t.session.InQuestionnaire()
}

func (r *Router) answerQuestionnaire(t *turn) (Result, error) {
	step := t.session.Questionnaire.Answer(t.text)
	if step.State == questionnaire.Completed {
		r.logger.Info("ROUTER", "Questionnaire completed", map[string]interface{}{
			"session_id":       t.session.ID,
			"depression":       step.Result.Depression,
			"anxiety":          step.Result.Anxiety,
			"stress":           step.Result.Stress,
			"depression_level": step.Result.DepressionLevel.String(),
			"anxiety_level":    step.Result.AnxietyLevel.String(),
			"stress_level":     step.Result.StressLevel.String(),
		})
	}
	return Result{
		Reply:      step.Reply,
		Category:   string(classifier.Questionnaire),
		Assessment: step.Result,
	}, nil
}

func (r *Router) wantsQuestionnaire(t *turn) bool {
	return r.classifier.IsQuestionnaireTrigger(t.text)
}

func (r *Router) startQuestionnaire(t *turn) (Result, error) {
	t.session.FallbackCount = 0
	return Result{
		Reply:    t.session.Questionnaire.Start(),
		Category: string(classifier.Questionnaire),
	}, nil
}

func (r *Router) isFAQ(t *turn) bool {
	answer, ok := r.classifier.FAQ(t.text)
	t.faqAnswer = answer
	return ok
}

func (r *Router) answerFAQ(t *turn) (Result, error) {
	t.session.FallbackCount = 0
	t.session.LastCategory = store.CategoryFAQ
	return Result{Reply: t.faqAnswer, Category: store.CategoryFAQ}, nil
}

func (r *Router) isFollowup(t *turn) bool {
	_, ok := followupSets[t.session.LastCategory]
	return ok && r.classifier.IsNegativeAck(t.text)
}

func (r *Router) followup(t *turn) (Result, error) {
	f := followupSets[t.session.LastCategory]
	return r.adaptive(t, f.set, f.category)
}

func (r *Router) isGreeting(t *turn) bool {
	return r.classifier.IsGreeting(t.text)
}

func (r *Router) greet(t *turn) (Result, error) {
	t.session.FallbackCount = 0
	t.session.LastCategory = store.CategoryGreeting
	return Result{Reply: GreetingMessage, Category: store.CategoryGreeting}, nil
}

func (r *Router) hasEmotion(t *turn) bool {
	t.emotion = r.classifier.Emotion(t.text)
	_, ok := emotionSets[t.emotion]
	return ok
}

func (r *Router) respondToEmotion(t *turn) (Result, error) {
	return r.adaptive(t, emotionSets[t.emotion], string(t.emotion))
}

func (r *Router) fallback(t *turn) (Result, error) {
	if t.session.FallbackCount >= 2 {
		res, err := r.adaptive(t, SetGeneral, store.CategoryGeneral)
		if err != nil {
			return res, err
		}
		t.session.FallbackCount++
		return res, nil
	}

	t.session.LastCategory = store.CategoryDefault
	t.session.FallbackCount++
	return Result{Reply: DefaultMessage, Category: store.CategoryDefault}, nil
}

// adaptive selects from set, credits the selection with the current turn's
// reward and records category as the session's last category. A failed
// flush is reported but does not fail the turn.
func (r *Router) adaptive(t *turn, set, category string) (Result, error) {
	reply, err := r.qvalues.Select(set)
	if err != nil {
		return Result{}, err
	}

	reward := t.rewardValue(r.estimator)
	value, err := r.qvalues.Update(t.ctx, set, reply, float64(reward))
	if err != nil {
		if !errors.Is(err, bandit.ErrPersist) {
			return Result{}, err
		}
		r.logger.Error("QVALUE", "Failed to persist q-values", map[string]interface{}{
			"session_id": t.session.ID,
			"set":        set,
			"error":      err.Error(),
		})
		r.publisher.PublishQValuePersistFailed(t.ctx, set, reply, err)
	}
	r.publisher.PublishQValueUpdated(t.ctx, set, reply, reward, value)

	t.session.LastReply = reply
	t.session.LastCategory = category
	if category != store.CategoryGeneral {
		t.session.FallbackCount = 0
	}
	return Result{Reply: reply, Category: category}, nil
}

func (t *turn) rewardValue(e RewardEstimator) int {
	if !t.rewarded {
		t.reward = e.Reward(t.text)
		t.rewarded = true
	}
	return t.reward
}
