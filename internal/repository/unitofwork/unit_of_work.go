package unitofwork

import (
	"context"

	"mindcare-be/internal/repository/contract"
)

// UnitOfWork scopes the q-value repository to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	QValueRepository() contract.QValueRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
