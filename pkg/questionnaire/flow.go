package questionnaire

import (
	"errors"
	"fmt"
	"strings"
)

// State is the position of a Flow. Completed is only ever reported on the
// Step that finishes a run; the Flow itself is Idle again by then.
type State int

const (
	Idle State = iota
	AwaitingAnswer
	Completed
)

func (s State) String() string {
	switch s {
	case AwaitingAnswer:
		return "awaiting_answer"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// Scores holds the raw sub-scale totals while a run is in progress.
type Scores struct {
	Depression int `json:"depression"`
	Anxiety    int `json:"anxiety"`
	Stress     int `json:"stress"`
}

func (s *Scores) add(index, answer int) {
	switch SubscaleOf(index) {
	case Depression:
		s.Depression += answer
	case Anxiety:
		s.Anxiety += answer
	default:
		s.Stress += answer
	}
}

// Result is the interpretation of a finished run. Totals are doubled to the
// 42-point scale the severity bands are defined on.
type Result struct {
	Depression      int      `json:"depression"`
	Anxiety         int      `json:"anxiety"`
	Stress          int      `json:"stress"`
	DepressionLevel Severity `json:"depression_level"`
	AnxietyLevel    Severity `json:"anxiety_level"`
	StressLevel     Severity `json:"stress_level"`
}

// Interpret doubles and bands raw totals.
func Interpret(raw Scores) Result {
	r := Result{
		Depression: raw.Depression * 2,
		Anxiety:    raw.Anxiety * 2,
		Stress:     raw.Stress * 2,
	}
	r.DepressionLevel = Classify(Depression, r.Depression)
	r.AnxietyLevel = Classify(Anxiety, r.Anxiety)
	r.StressLevel = Classify(Stress, r.Stress)
	return r
}

// Message renders the composite feedback shown when a run completes.
func (r Result) Message() string {
	var b strings.Builder
	b.WriteString("Thank you for completing the DASS-21 questionnaire. Here are your results:\n\n")
	fmt.Fprintf(&b, "Depression score: %d/%d\n%s\n\n", r.Depression, MaxScore, Feedback(Depression, r.DepressionLevel))
	fmt.Fprintf(&b, "Anxiety score: %d/%d\n%s\n\n", r.Anxiety, MaxScore, Feedback(Anxiety, r.AnxietyLevel))
	fmt.Fprintf(&b, "Stress score: %d/%d\n%s\n\n", r.Stress, MaxScore, Feedback(Stress, r.StressLevel))
	b.WriteString("Remember, this is not a clinical diagnosis. If you're concerned about your mental health, please speak with a qualified mental health professional.")
	return b.String()
}

// Step is the outcome of one answer. State is where the answer left the
// run.
type Step struct {
	Reply    string
	Accepted bool
	State    State
	Result   *Result
}

// Flow walks the fixed prompt list once per run. The zero value is Idle.
// There is no cancel transition: a run only ends by answering every item.
type Flow struct {
	Active bool   `json:"active"`
	Index  int    `json:"index"`
	Scores Scores `json:"scores"`
}

func (f *Flow) State() State {
	if f.Active {
		return AwaitingAnswer
	}
	return Idle
}

// Start resets the run and returns the introduction with the first prompt.
func (f *Flow) Start() string {
	f.Active = true
	f.Index = 0
	f.Scores = Scores{}
	return Intro()
}

// Answer records a reply to the current prompt. Unparseable replies leave
// the index and scores untouched and return a clarification.
func (f *Flow) Answer(text string) Step {
	if !f.Active {
		return Step{State: Idle}
	}

	answer, err := ParseAnswer(text)
	if err != nil {
		if errors.Is(err, ErrOutOfRange) {
			return Step{Reply: RangePrompt(), State: AwaitingAnswer}
		}
		return Step{Reply: ClarifyPrompt(), State: AwaitingAnswer}
	}

	f.Scores.add(f.Index, answer)
	f.Index++

	if f.Index < ItemCount {
		return Step{Reply: QuestionPrompt(f.Index), Accepted: true, State: AwaitingAnswer}
	}

	result := Interpret(f.Scores)
	f.reset()
	return Step{Reply: result.Message(), Accepted: true, State: Completed, Result: &result}
}

func (f *Flow) reset() {
	f.Active = false
	f.Index = 0
	f.Scores = Scores{}
}
