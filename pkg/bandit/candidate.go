package bandit

import "fmt"

// CandidateSet is the pool of authored replies for one category and the
// learned quality estimate of each reply. Replies keep their authored order,
// which is the enumeration order used to break ties on selection.
type CandidateSet struct {
	Name    string
	replies []string
	values  map[string]float64
}

// NewCandidateSet builds a set whose replies all start at 0.0.
func NewCandidateSet(name string, replies ...string) (*CandidateSet, error) {
	if len(replies) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCandidateSet, name)
	}

	set := &CandidateSet{
		Name:    name,
		replies: make([]string, 0, len(replies)),
		values:  make(map[string]float64, len(replies)),
	}
	for _, reply := range replies {
		if _, exists := set.values[reply]; exists {
			return nil, fmt.Errorf("%w: %s: %q", ErrDuplicateCandidate, name, reply)
		}
		set.replies = append(set.replies, reply)
		set.values[reply] = 0.0
	}
	return set, nil
}

// MustCandidateSet is NewCandidateSet for authored tables known at compile time.
func MustCandidateSet(name string, replies ...string) *CandidateSet {
	set, err := NewCandidateSet(name, replies...)
	if err != nil {
		panic(err)
	}
	return set
}

func (c *CandidateSet) Len() int {
	return len(c.replies)
}

// Replies returns the authored replies in enumeration order.
func (c *CandidateSet) Replies() []string {
	out := make([]string, len(c.replies))
	copy(out, c.replies)
	return out
}

// Value returns the current estimate for reply.
func (c *CandidateSet) Value(reply string) (float64, bool) {
	v, ok := c.values[reply]
	return v, ok
}

// Values returns a copy of every estimate in the set.
func (c *CandidateSet) Values() map[string]float64 {
	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

func (c *CandidateSet) set(reply string, value float64) bool {
	if _, ok := c.values[reply]; !ok {
		return false
	}
	c.values[reply] = value
	return true
}
