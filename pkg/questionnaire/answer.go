package questionnaire

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrOutOfRange   = errors.New("answer out of range")
	ErrUnrecognized = errors.New("answer not recognized")
)

// ParseAnswer turns a reply into a value in [0, MaxAnswer]. A number is
// taken as-is; otherwise the reply is matched case-insensitively as a
// fragment of a canonical scale label, then against the synonym table.
func ParseAnswer(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrUnrecognized
	}

	if n, err := strconv.Atoi(text); err == nil {
		if n < 0 || n > MaxAnswer {
			return 0, ErrOutOfRange
		}
		return n, nil
	}

	lower := strings.ToLower(text)
	for value, label := range ScaleLabels {
		if strings.Contains(strings.ToLower(label), lower) {
			return value, nil
		}
	}
	if value, ok := synonyms[lower]; ok {
		return value, nil
	}
	return 0, ErrUnrecognized
}
