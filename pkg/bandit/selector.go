package bandit

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultEpsilon      = 0.10
	DefaultLearningRate = 0.10
)

// Selector implements epsilon-greedy selection and the one-step
// Q <- Q + lr*(reward - Q) estimator over a CandidateSet.
type Selector struct {
	epsilon      float64
	learningRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector validates the policy parameters. A nil rng is seeded from the clock.
func NewSelector(epsilon, learningRate float64, rng *rand.Rand) (*Selector, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpsilon, epsilon)
	}
	if learningRate <= 0 || learningRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLearningRate, learningRate)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Selector{
		epsilon:      epsilon,
		learningRate: learningRate,
		rng:          rng,
	}, nil
}

func (s *Selector) Epsilon() float64      { return s.epsilon }
func (s *Selector) LearningRate() float64 { return s.learningRate }

// Select explores a uniformly random reply with probability epsilon and
// otherwise exploits the highest estimate, ties going to the earliest reply.
func (s *Selector) Select(set *CandidateSet) string {
	if set.Len() == 0 {
		panic(fmt.Sprintf("bandit: select on empty candidate set %q", set.Name))
	}

	s.mu.Lock()
	explore := s.rng.Float64() < s.epsilon
	pick := 0
	if explore {
		pick = s.rng.IntN(set.Len())
	}
	s.mu.Unlock()

	if explore {
		return set.replies[pick]
	}

	best := set.replies[0]
	bestValue := set.values[best]
	for _, reply := range set.replies[1:] {
		if v := set.values[reply]; v > bestValue {
			best, bestValue = reply, v
		}
	}
	return best
}

// Update applies one learning step to reply and returns its new estimate.
func (s *Selector) Update(set *CandidateSet, reply string, reward float64) (float64, error) {
	q, ok := set.Value(reply)
	if !ok {
		return 0, fmt.Errorf("%w: %s: %q", ErrUnknownCandidate, set.Name, reply)
	}
	q = Step(q, reward, s.learningRate)
	set.set(reply, q)
	return q, nil
}

// Step is the one-step estimator with no discounting or traces.
func Step(q, reward, learningRate float64) float64 {
	return q + learningRate*(reward-q)
}
