package dialogue

import "mindcare-be/pkg/bandit"

// Candidate set names. They double as the keys of the persisted record.
const (
	SetPositive         = "positive_responses"
	SetSad              = "sad_responses"
	SetAnxiety          = "anxiety_responses"
	SetAnxietyFollowups = "anxiety_followups"
	SetStress           = "stress_responses"
	SetStressFollowups  = "stress_followups"
	SetGeneral          = "general_conversation_responses"
)

const (
	GreetingMessage = "Hi, how are you? I'm here to help. How are you feeling today? If you'd like to take the DASS-21 questionnaire to assess depression, anxiety, and stress, just type 'DASS-21'."
	DefaultMessage  = "I'm here to support you. How are you feeling today? Whether you're having a great day or facing some challenges, I'm here to chat. You can also take the DASS-21 questionnaire by typing 'DASS-21'."
)

var authoredReplies = []struct {
	name    string
	replies []string
}{
	{SetAnxiety, []string{
		"It seems you're feeling anxious. Have you tried deep breathing exercises?",
		"Sometimes physical activity can help. A short walk or some light exercise might improve your mood.",
		"Mindfulness meditation could be beneficial. Try focusing on your breath.",
		"It might help to talk about what you're feeling. Consider reaching out to a friend or a professional for support.",
		"Writing down your thoughts in a journal can be therapeutic and may help reduce anxiety.",
	}},
	{SetAnxietyFollowups, []string{
		"I understand. Deep breathing isn't for everyone. Would you like to try another approach? Perhaps talking about what's making you anxious might help.",
		"That's okay. Sometimes it helps to identify what's triggering your anxiety. Can you share what's on your mind?",
		"No problem. There are many ways to manage anxiety. Have you found anything that helps you feel calmer in the past?",
		"I understand. Would you prefer to try mindfulness meditation instead? It can be helpful for managing anxiety.",
		"That's alright. How about trying to focus on something positive? Is there something you're looking forward to?",
	}},
	{SetPositive, []string{
		"That's wonderful to hear! It's great that you're feeling good today.",
		"I'm so happy to hear that! What's contributing to your positive mood?",
		"That's excellent! Positive feelings are worth celebrating. Keep it up!",
		"Great to hear you're in a good mood! Is there anything specific that made your day better?",
		"Fantastic! Happiness is contagious - thanks for sharing your positive energy!",
	}},
	{SetSad, []string{
		"I'm sorry to hear you're feeling sad. Would you like to talk about what's bothering you?",
		"It's okay to feel sad sometimes. Is there anything I can do to support you?",
		"I'm here for you. Sometimes sharing what's making you sad can help lighten the burden.",
		"I understand. Sadness is a natural emotion. Is there something specific that's causing you to feel this way?",
		"Thank you for sharing how you're feeling. Would talking about it help you feel better?",
	}},
	{SetStress, []string{
		"I can see you're feeling stressed. Taking a few moments to breathe deeply might help.",
		"Stress can be challenging. Would you like to talk about what's causing it?",
		"When you're feeling stressed, sometimes a short break can help. Could you step away for 5 minutes?",
		"I understand stress can be difficult. Have you tried any relaxation techniques today?",
		"Feeling stressed is common. Would it help to identify what's triggering your stress?",
	}},
	{SetStressFollowups, []string{
		"I understand relaxation techniques don't work for everyone. Is there something specific causing your stress that you'd like to discuss?",
		"That's okay. Sometimes identifying the source of stress can help manage it. What's been on your mind lately?",
		"No problem. Everyone manages stress differently. What has helped you feel less stressed in the past?",
		"I understand. Would it help to talk about ways to address the specific situation that's causing your stress?",
		"That's alright. Sometimes just acknowledging stress is the first step. Is there anything else you'd like to talk about?",
	}},
	{SetGeneral, []string{
		"What aspects of mental health are you most interested in discussing today?",
		"Is there something specific about wellbeing or mental health you'd like to explore?",
		"I'm here to chat about various topics related to mental wellness. What's on your mind?",
		"I'd be happy to discuss coping strategies or mental health topics that interest you.",
		"Everyone's mental health journey is unique. Is there something particular you're curious about?",
	}},
}

// DefaultCandidateSets builds fresh sets for every adaptive category, all
// estimates at zero.
func DefaultCandidateSets() []*bandit.CandidateSet {
	sets := make([]*bandit.CandidateSet, 0, len(authoredReplies))
	for _, a := range authoredReplies {
		sets = append(sets, bandit.MustCandidateSet(a.name, a.replies...))
	}
	return sets
}
