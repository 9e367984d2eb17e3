package persistence

import (
	"context"
	"fmt"
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/repository/specification"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/bandit"
)

// GormPersister stores one row per candidate set through the unit of work.
type GormPersister struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGormPersister(uowFactory unitofwork.RepositoryFactory) *GormPersister {
	return &GormPersister{uowFactory: uowFactory}
}

func (p *GormPersister) Load(ctx context.Context) (bandit.Snapshot, error) {
	repo := p.uowFactory.NewUnitOfWork(ctx).QValueRepository()
	sets, err := repo.FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return bandit.Snapshot{}, fmt.Errorf("load q-value sets: %w", err)
	}
	if len(sets) == 0 {
		return bandit.Snapshot{}, nil
	}

	version, err := repo.MaxVersion(ctx)
	if err != nil {
		return bandit.Snapshot{}, fmt.Errorf("load q-value version: %w", err)
	}

	record := make(bandit.Record, len(sets))
	for _, set := range sets {
		record[set.Name] = set.Estimates
	}
	return bandit.Snapshot{Version: version, Sets: record}, nil
}

// Save upserts every set in one transaction. When any row is already at
// the snapshot's version or newer the whole save is rolled back with
// ErrStaleSnapshot.
func (p *GormPersister) Save(ctx context.Context, snapshot bandit.Snapshot) (err error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			uow.Rollback()
		}
	}()

	now := time.Now()
	repo := uow.QValueRepository()
	for name, estimates := range snapshot.Sets {
		var written bool
		written, err = repo.Upsert(ctx, &entity.QValueSet{
			Name:      name,
			Estimates: estimates,
			Version:   snapshot.Version,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("upsert %s: %w", name, err)
		}
		if !written {
			err = fmt.Errorf("%w: set %s at version %d", bandit.ErrStaleSnapshot, name, snapshot.Version)
			return err
		}
	}

	if err = uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
