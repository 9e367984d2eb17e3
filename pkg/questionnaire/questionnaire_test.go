package questionnaire

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"0", 0, nil},
		{"3", 3, nil},
		{" 2 ", 2, nil},
		{"4", 0, ErrOutOfRange},
		{"-1", 0, ErrOutOfRange},
		{"Did not apply to me at all", 0, nil},
		{"did not apply", 0, nil},
		{"some of the time", 1, nil},
		{"CONSIDERABLE DEGREE", 2, nil},
		{"most of the time", 3, nil},
		{"never", 0, nil},
		{"sometimes", 1, nil},
		{"often", 2, nil},
		{"always", 3, nil},
		{"", 0, ErrUnrecognized},
		{"   ", 0, ErrUnrecognized},
		{"banana", 0, ErrUnrecognized},
		{"take the dass-21", 0, ErrUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnswer(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubscaleBlocks(t *testing.T) {
	for i := 0; i < ItemCount; i++ {
		want := Subscale(i / BlockSize)
		assert.Equal(t, want, SubscaleOf(i), "index %d", i)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		subscale Subscale
		score    int
		want     Severity
	}{
		{Depression, 28, High},
		{Depression, 27, Moderate},
		{Depression, 20, Moderate},
		{Depression, 19, Mild},
		{Depression, 10, Mild},
		{Depression, 9, Normal},

		{Anxiety, 20, High},
		{Anxiety, 19, Moderate},
		{Anxiety, 14, Moderate},
		{Anxiety, 13, Mild},
		{Anxiety, 8, Mild},
		{Anxiety, 7, Normal},

		{Stress, 34, High},
		{Stress, 33, Moderate},
		{Stress, 26, Moderate},
		{Stress, 25, Mild},
		{Stress, 18, Mild},
		{Stress, 17, Normal},

		{Stress, 0, Normal},
		{Depression, MaxScore, High},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.subscale, tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.subscale, tt.score))
		})
	}
}

func TestFlowStartResets(t *testing.T) {
	f := Flow{Index: 9, Scores: Scores{Depression: 4}}
	intro := f.Start()

	assert.Equal(t, AwaitingAnswer, f.State())
	assert.Zero(t, f.Index)
	assert.Equal(t, Scores{}, f.Scores)
	assert.Contains(t, intro, "Question 1/21: "+Items[0])
	for _, label := range ScaleLabels {
		assert.Contains(t, intro, label)
	}
}

func TestFlowMalformedAnswerLeavesStateUnchanged(t *testing.T) {
	var f Flow
	f.Start()
	for _, a := range []string{"1", "2", "3", "0", "1"} {
		require.True(t, f.Answer(a).Accepted)
	}
	before := f

	for _, bad := range []string{"banana", "7", "", "dass-21"} {
		step := f.Answer(bad)
		assert.False(t, step.Accepted)
		assert.Nil(t, step.Result)
		assert.Equal(t, AwaitingAnswer, step.State)
		assert.Equal(t, before, f)
		assert.Contains(t, step.Reply, "0 = Did not apply to me at all")
	}

	assert.True(t, strings.HasPrefix(f.Answer("9").Reply, "Please enter a number between 0 and 3"))
	assert.True(t, strings.HasPrefix(f.Answer("what").Reply, "I didn't understand your response"))
}

func TestFlowPromptsCarryOrdinal(t *testing.T) {
	var f Flow
	f.Start()
	for i := 0; i < ItemCount-1; i++ {
		step := f.Answer("0")
		require.True(t, step.Accepted)
		assert.Equal(t, AwaitingAnswer, step.State)
		assert.Contains(t, step.Reply, fmt.Sprintf("Question %d/21: %s", i+2, Items[i+1]))
		assert.Equal(t, i+1, f.Index)
	}
}

func TestFlowAllZerosIsNormal(t *testing.T) {
	var f Flow
	f.Start()

	var last Step
	for i := 0; i < ItemCount; i++ {
		last = f.Answer("0")
	}

	require.NotNil(t, last.Result)
	assert.Equal(t, Result{}, *last.Result)
	assert.Contains(t, last.Reply, "Depression score: 0/42")
	assert.Contains(t, last.Reply, "Anxiety score: 0/42")
	assert.Contains(t, last.Reply, "Stress score: 0/42")
	assert.Contains(t, last.Reply, "not a clinical diagnosis")

	assert.Equal(t, Completed, last.State)
	assert.Equal(t, "completed", last.State.String())
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, Idle, f.Answer("0").State)
	assert.Zero(t, f.Index)
	assert.Equal(t, Scores{}, f.Scores)
}

func TestFlowTotalsAreDoubledBlockSums(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for run := 0; run < 50; run++ {
		var answers [ItemCount]int
		var f Flow
		f.Start()

		var last Step
		for i := range answers {
			answers[i] = rng.IntN(MaxAnswer + 1)
			last = f.Answer(fmt.Sprint(answers[i]))
		}
		require.NotNil(t, last.Result)

		sum := func(from int) int {
			total := 0
			for _, a := range answers[from : from+BlockSize] {
				total += a
			}
			return total
		}
		r := *last.Result
		assert.Equal(t, 2*sum(0), r.Depression)
		assert.Equal(t, 2*sum(7), r.Anxiety)
		assert.Equal(t, 2*sum(14), r.Stress)
		for _, v := range []int{r.Depression, r.Anxiety, r.Stress} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, MaxScore)
		}
		assert.Equal(t, Classify(Anxiety, r.Anxiety), r.AnxietyLevel)
	}
}

func TestFlowCanBeRetaken(t *testing.T) {
	var f Flow
	for run := 0; run < 2; run++ {
		f.Start()
		var last Step
		for i := 0; i < ItemCount; i++ {
			last = f.Answer("3")
		}
		require.NotNil(t, last.Result)
		assert.Equal(t, MaxScore, last.Result.Stress)
		assert.Equal(t, High, last.Result.StressLevel)
	}
}
