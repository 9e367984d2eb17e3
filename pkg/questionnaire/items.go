package questionnaire

// ItemCount is the number of DASS-21 prompts. The prompts form three
// contiguous blocks of BlockSize items: depression [0,7), anxiety [7,14),
// stress [14,21).
const (
	ItemCount = 21
	BlockSize = 7
	MaxAnswer = 3

	// MaxScore is the largest doubled sub-scale total.
	MaxScore = 2 * BlockSize * MaxAnswer
)

var Items = [ItemCount]string{
	// depression
	"I couldn't seem to experience any positive feeling at all.",
	"I found it difficult to work up the initiative to do things.",
	"I felt that I had nothing to look forward to.",
	"I felt down-hearted and blue.",
	"I was unable to become enthusiastic about anything.",
	"I felt I wasn't worth much as a person.",
	"I felt that life was meaningless.",

	// anxiety
	"I was aware of dryness of my mouth.",
	"I experienced breathing difficulty (e.g., excessively rapid breathing, breathlessness in the absence of physical exertion).",
	"I experienced trembling (e.g., in the hands).",
	"I was worried about situations in which I might panic and make a fool of myself.",
	"I felt I was close to panic.",
	"I was aware of the action of my heart in the absence of physical exertion (e.g., sense of heart rate increase, heart missing a beat).",
	"I felt scared without any good reason.",

	// stress
	"I found it hard to wind down.",
	"I tended to over-react to situations.",
	"I felt that I was using a lot of nervous energy.",
	"I found myself getting agitated.",
	"I found it difficult to relax.",
	"I was intolerant of anything that kept me from getting on with what I was doing.",
	"I felt that I was rather touchy.",
}

// ScaleLabels are the canonical answer phrases, indexed by answer value.
var ScaleLabels = [MaxAnswer + 1]string{
	"Did not apply to me at all",
	"Applied to me to some degree, or some of the time",
	"Applied to me to a considerable degree, or a good part of time",
	"Applied to me very much, or most of the time",
}

var synonyms = map[string]int{
	"not at all": 0,
	"never":      0,
	"none":       0,

	"somewhat":  1,
	"sometimes": 1,
	"some":      1,

	"considerable": 2,
	"often":        2,
	"good part":    2,

	"very much":        3,
	"always":           3,
	"most of the time": 3,
}

// Subscale identifies one of the three 7-item blocks.
type Subscale int

const (
	Depression Subscale = iota
	Anxiety
	Stress
)

func (s Subscale) String() string {
	switch s {
	case Depression:
		return "depression"
	case Anxiety:
		return "anxiety"
	case Stress:
		return "stress"
	default:
		return "unknown"
	}
}

// SubscaleOf maps a prompt index to its block.
func SubscaleOf(index int) Subscale {
	switch {
	case index < BlockSize:
		return Depression
	case index < 2*BlockSize:
		return Anxiety
	default:
		return Stress
	}
}
