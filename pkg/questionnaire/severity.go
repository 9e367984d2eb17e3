package questionnaire

// Severity is an ordered band on a doubled sub-scale total.
type Severity int

const (
	Normal Severity = iota
	Mild
	Moderate
	High
)

func (s Severity) String() string {
	switch s {
	case Mild:
		return "mild"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	default:
		return "normal"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Bands holds the lower bound of each band above Normal.
type Bands struct {
	Mild, Moderate, High int
}

var bands = map[Subscale]Bands{
	Depression: {Mild: 10, Moderate: 20, High: 28},
	Anxiety:    {Mild: 8, Moderate: 14, High: 20},
	Stress:     {Mild: 18, Moderate: 26, High: 34},
}

// BandsFor returns the thresholds used for a sub-scale.
func BandsFor(s Subscale) Bands {
	return bands[s]
}

// Classify bands a doubled total.
func Classify(s Subscale, doubled int) Severity {
	b := bands[s]
	switch {
	case doubled >= b.High:
		return High
	case doubled >= b.Moderate:
		return Moderate
	case doubled >= b.Mild:
		return Mild
	default:
		return Normal
	}
}

var feedback = map[Subscale][4]string{
	Depression: {
		Normal:   "Your depression score is within the normal range.",
		Mild:     "You're showing some mild symptoms of depression. Self-care strategies might help improve your mood.",
		Moderate: "Your responses indicate some symptoms of depression. Taking time for self-care and seeking support could be beneficial.",
		High:     "Based on your responses, you may be experiencing symptoms of depression. Consider speaking with a mental health professional for further evaluation and support.",
	},
	Anxiety: {
		Normal:   "Your anxiety score is within the normal range.",
		Mild:     "Your responses indicate mild anxiety. Simple relaxation techniques might be beneficial.",
		Moderate: "You're showing moderate anxiety symptoms. Learning anxiety management techniques could be helpful.",
		High:     "Your responses suggest significant anxiety symptoms. A mental health professional could provide strategies to help manage these feelings.",
	},
	Stress: {
		Normal:   "Your stress score is within the normal range.",
		Mild:     "Your responses show mild stress. Simple self-care strategies might help reduce this.",
		Moderate: "You're experiencing moderate stress levels. Stress management techniques could be helpful.",
		High:     "Your responses indicate high stress levels. It's important to find healthy ways to manage stress.",
	},
}

// Feedback is the interpretation text for one sub-scale band.
func Feedback(s Subscale, sev Severity) string {
	return feedback[s][sev]
}
