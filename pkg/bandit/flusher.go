package bandit

import (
	"context"
	"sync"
)

// WriteThrough persists every snapshot it is handed. Flushes are serialized
// and a snapshot that is not newer than the last one written is skipped, so
// the persisted record never moves backwards.
type WriteThrough struct {
	mu        sync.Mutex
	persister Persister
	flushed   uint64
}

func NewWriteThrough(p Persister) *WriteThrough {
	return &WriteThrough{persister: p}
}

func (w *WriteThrough) Flush(ctx context.Context, snapshot Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if snapshot.Version <= w.flushed {
		return nil
	}
	if err := w.persister.Save(ctx, snapshot); err != nil {
		return err
	}
	w.flushed = snapshot.Version
	return nil
}

// Resume marks version as already written. It is called after the store
// has been loaded so the flusher starts from the persisted version.
func (w *WriteThrough) Resume(version uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if version > w.flushed {
		w.flushed = version
	}
}

// Flushed reports the version of the last snapshot written.
func (w *WriteThrough) Flushed() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushed
}
