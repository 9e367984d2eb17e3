package questionnaire

import (
	"fmt"
	"strings"
)

const shortLegend = "0 = Did not apply to me at all\n" +
	"1 = Applied to me to some degree\n" +
	"2 = Applied to me considerably\n" +
	"3 = Applied to me very much"

// Intro is the first message of a run, ending with prompt 1.
func Intro() string {
	var b strings.Builder
	b.WriteString("I'll help you take the DASS-21 questionnaire, which measures depression, anxiety, and stress symptoms. ")
	fmt.Fprintf(&b, "It has %d questions that refer to how you've been feeling during the past week.\n\n", ItemCount)
	b.WriteString("For each statement, please rate on a scale of 0-3 how much it applied to you:\n")
	for value, label := range ScaleLabels {
		fmt.Fprintf(&b, "%d = %s\n", value, label)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Question 1/%d: %s", ItemCount, Items[0])
	return b.String()
}

// QuestionPrompt renders prompt index with its 1-based ordinal and the legend.
func QuestionPrompt(index int) string {
	return fmt.Sprintf("Question %d/%d: %s\n\nPlease rate on a scale of 0-3 how much this applied to you in the past week:\n%s",
		index+1, ItemCount, Items[index], shortLegend)
}

func RangePrompt() string {
	return "Please enter a number between 0 and 3, where:\n" + shortLegend
}

func ClarifyPrompt() string {
	return "I didn't understand your response. Please enter a number between 0-3:\n" + shortLegend
}
