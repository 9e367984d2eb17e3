// Package persistence holds the q-value store backends.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mindcare-be/pkg/bandit"
)

// FilePersister keeps the record as one JSON document, keyed by candidate
// set name. Every save rewrites the whole file. The document carries no
// version, so Load always reports zero.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load(ctx context.Context) (bandit.Snapshot, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return bandit.Snapshot{}, nil
		}
		return bandit.Snapshot{}, fmt.Errorf("read %s: %w", p.path, err)
	}

	var record bandit.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return bandit.Snapshot{}, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return bandit.Snapshot{Sets: record}, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial document.
func (p *FilePersister) Save(ctx context.Context, snapshot bandit.Snapshot) error {
	raw, err := json.MarshalIndent(snapshot.Sets, "", "    ")
	if err != nil {
		return fmt.Errorf("encode q-values: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("replace %s: %w", p.path, err)
	}
	return nil
}
