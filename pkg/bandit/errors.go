package bandit

import "errors"

var (
	// ErrEmptyCandidateSet is a configuration defect caught at construction.
	ErrEmptyCandidateSet  = errors.New("candidate set has no replies")
	ErrDuplicateCandidate = errors.New("duplicate candidate reply")
	ErrDuplicateSet       = errors.New("duplicate candidate set")

	ErrUnknownCategory  = errors.New("unknown candidate set")
	ErrUnknownCandidate = errors.New("unknown candidate reply")

	// ErrPersist wraps a failed durability flush. The in-memory update it
	// accompanies has already been applied.
	ErrPersist = errors.New("q-value flush failed")
	// ErrStaleSnapshot is returned by a persister that already holds a
	// record at least as new as the snapshot it was asked to write.
	ErrStaleSnapshot = errors.New("persisted q-values are newer than snapshot")

	ErrInvalidEpsilon      = errors.New("epsilon must be within [0, 1]")
	ErrInvalidLearningRate = errors.New("learning rate must be within (0, 1]")
)
