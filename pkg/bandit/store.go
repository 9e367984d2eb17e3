package bandit

import (
	"context"
	"fmt"
	"sync"
)

// Record is the persisted shape of the store: one entry per candidate set,
// each mapping the exact authored reply to its estimate.
type Record map[string]map[string]float64

// Snapshot is a point-in-time copy of every estimate. Version increases by
// one on each update, so a flusher can refuse to write an older snapshot
// over a newer one.
type Snapshot struct {
	Version uint64 `json:"version"`
	Sets    Record `json:"sets"`
}

// Persister loads and overwrites the persisted record. Load returns a zero
// snapshot without error when nothing has been persisted yet; backends that
// keep no version report zero. Save returns ErrStaleSnapshot instead of
// writing when the stored version is not older than the snapshot.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// Flusher receives a snapshot after every update.
type Flusher interface {
	Flush(ctx context.Context, snapshot Snapshot) error
}

// Store is the shared table of candidate sets. Updates are applied
// atomically under a single exclusive lock and then flushed.
type Store struct {
	mu       sync.RWMutex
	sets     map[string]*CandidateSet
	order    []string
	version  uint64
	selector *Selector
	flusher  Flusher
}

// NewStore validates the candidate sets. A nil flusher keeps the store
// memory-only.
func NewStore(selector *Selector, flusher Flusher, sets ...*CandidateSet) (*Store, error) {
	if selector == nil {
		return nil, fmt.Errorf("bandit: store requires a selector")
	}

	s := &Store{
		sets:     make(map[string]*CandidateSet, len(sets)),
		order:    make([]string, 0, len(sets)),
		selector: selector,
		flusher:  flusher,
	}
	for _, set := range sets {
		if set == nil || set.Len() == 0 {
			name := "<nil>"
			if set != nil {
				name = set.Name
			}
			return nil, fmt.Errorf("%w: %s", ErrEmptyCandidateSet, name)
		}
		if _, exists := s.sets[set.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSet, set.Name)
		}
		s.sets[set.Name] = set
		s.order = append(s.order, set.Name)
	}
	return s, nil
}

// SetFlusher replaces the flusher. It is meant for wiring at startup.
func (s *Store) SetFlusher(flusher Flusher) {
	s.mu.Lock()
	s.flusher = flusher
	s.mu.Unlock()
}

// Names lists the candidate sets in registration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Merge overwrites defaults with persisted values for known replies only.
// Unknown sets and unknown replies are ignored. It returns how many
// estimates were taken from record.
func (s *Store) Merge(record Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := 0
	for name, values := range record {
		set, ok := s.sets[name]
		if !ok {
			continue
		}
		for reply, v := range values {
			if set.set(reply, v) {
				merged++
			}
		}
	}
	return merged
}

// Load merges the persisted record into the defaults and resumes the
// version counter from the persisted one, so the next update is newer than
// anything already written. On error the defaults are left untouched.
func (s *Store) Load(ctx context.Context, p Persister) (int, error) {
	snapshot, err := p.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := s.Merge(snapshot.Sets)

	s.mu.Lock()
	if snapshot.Version > s.version {
		s.version = snapshot.Version
	}
	s.mu.Unlock()
	return merged, nil
}

// Version reports the version of the latest update.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Select picks a reply from the named set.
func (s *Store) Select(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return s.selector.Select(set), nil
}

// Update applies the learning step to reply and flushes the resulting
// snapshot. A flush failure is returned wrapped in ErrPersist alongside the
// already-applied estimate.
func (s *Store) Update(ctx context.Context, name, reply string, reward float64) (float64, error) {
	s.mu.Lock()
	set, ok := s.sets[name]
	if !ok {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	q, err := s.selector.Update(set, reply, reward)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.version++
	snapshot := s.snapshotLocked()
	flusher := s.flusher
	s.mu.Unlock()

	if flusher == nil {
		return q, nil
	}
	if err := flusher.Flush(ctx, snapshot); err != nil {
		return q, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return q, nil
}

// Value returns a single estimate.
func (s *Store) Value(name, reply string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return 0, false
	}
	return set.Value(reply)
}

// Snapshot copies every estimate.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	record := make(Record, len(s.sets))
	for name, set := range s.sets {
		record[name] = set.Values()
	}
	return Snapshot{Version: s.version, Sets: record}
}
