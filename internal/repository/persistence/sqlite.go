package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/database"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS q_values (
	set_name TEXT NOT NULL,
	reply    TEXT NOT NULL,
	value    REAL NOT NULL,
	PRIMARY KEY (set_name, reply)
);

CREATE TABLE IF NOT EXISTS q_values_meta (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL
);
`

// SQLitePersister stores one row per (set, reply) pair. A save replaces
// every row inside one transaction and is refused with ErrStaleSnapshot
// when the stored version is not older than the snapshot.
type SQLitePersister struct {
	db *sql.DB
}

func NewSQLitePersister(path string) (*SQLitePersister, error) {
	db, err := database.NewSQLite(path, sqliteSchema)
	if err != nil {
		return nil, err
	}
	return &SQLitePersister{db: db}, nil
}

func (p *SQLitePersister) Close() error {
	return p.db.Close()
}

func (p *SQLitePersister) Load(ctx context.Context) (bandit.Snapshot, error) {
	var snapshot bandit.Snapshot
	err := p.db.QueryRowContext(ctx, `SELECT version FROM q_values_meta WHERE id = 1`).Scan(&snapshot.Version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return snapshot, fmt.Errorf("read version: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, `SELECT set_name, reply, value FROM q_values`)
	if err != nil {
		return snapshot, fmt.Errorf("query q_values: %w", err)
	}
	defer rows.Close()

	var record bandit.Record
	for rows.Next() {
		var name, reply string
		var value float64
		if err := rows.Scan(&name, &reply, &value); err != nil {
			return snapshot, fmt.Errorf("scan q_values: %w", err)
		}
		if record == nil {
			record = make(bandit.Record)
		}
		if record[name] == nil {
			record[name] = make(map[string]float64)
		}
		record[name][reply] = value
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("scan q_values: %w", err)
	}
	snapshot.Sets = record
	return snapshot, nil
}

func (p *SQLitePersister) Save(ctx context.Context, snapshot bandit.Snapshot) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var stored uint64
	err = tx.QueryRowContext(ctx, `SELECT version FROM q_values_meta WHERE id = 1`).Scan(&stored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read version: %w", err)
	}
	if err == nil && stored >= snapshot.Version {
		return fmt.Errorf("%w: stored %d, snapshot %d", bandit.ErrStaleSnapshot, stored, snapshot.Version)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM q_values`); err != nil {
		return fmt.Errorf("clear q_values: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO q_values (set_name, reply, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, estimates := range snapshot.Sets {
		for reply, value := range estimates {
			if _, err := stmt.ExecContext(ctx, name, reply, value); err != nil {
				return fmt.Errorf("insert %s: %w", name, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO q_values_meta (id, version) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version = excluded.version`,
		snapshot.Version)
	if err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	return tx.Commit()
}
