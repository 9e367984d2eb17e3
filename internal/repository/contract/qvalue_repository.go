package contract

import (
	"context"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/repository/specification"
)

type QValueRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QValueSet, error)
	// Upsert writes the set unless the stored row is already at the same or
	// a newer version. It reports whether the row was written.
	Upsert(ctx context.Context, set *entity.QValueSet) (bool, error)
	MaxVersion(ctx context.Context) (uint64, error)
}
