package dialogue

import (
	"fmt"
	"os"

	"mindcare-be/pkg/bandit"

	"gopkg.in/yaml.v3"
)

// LoadCandidateSets reads reply overrides from a YAML document mapping set
// names to reply lists:
//
//	sad_responses:
//	  - "I'm sorry you're feeling this way."
//
// Sets the file does not mention keep their authored replies. Unknown set
// names and empty lists are rejected.
func LoadCandidateSets(path string) ([]*bandit.CandidateSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replies file: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse replies file %s: %w", path, err)
	}

	known := make(map[string]bool, len(authoredReplies))
	for _, a := range authoredReplies {
		known[a.name] = true
	}
	for name := range overrides {
		if !known[name] {
			return nil, fmt.Errorf("replies file %s: unknown set %q", path, name)
		}
	}

	sets := make([]*bandit.CandidateSet, 0, len(authoredReplies))
	for _, a := range authoredReplies {
		replies, ok := overrides[a.name]
		if !ok {
			replies = a.replies
		}
		set, err := bandit.NewCandidateSet(a.name, replies...)
		if err != nil {
			return nil, fmt.Errorf("replies file %s: %w", path, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
