package implementation

import (
	"context"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/mapper"
	"mindcare-be/internal/model"
	"mindcare-be/internal/repository/contract"
	"mindcare-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QValueRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QValueMapper
}

func NewQValueRepository(db *gorm.DB) contract.QValueRepository {
	return &QValueRepositoryImpl{
		db:     db,
		mapper: mapper.NewQValueMapper(),
	}
}

func (r *QValueRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QValueRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QValueSet, error) {
	var models []*model.QValueSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.QValueSet, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *QValueRepositoryImpl) Upsert(ctx context.Context, set *entity.QValueSet) (bool, error) {
	m, err := r.mapper.ToModel(set)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"estimates", "version", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "q_value_sets.version < excluded.version"},
		}},
	}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *QValueRepositoryImpl) MaxVersion(ctx context.Context) (uint64, error) {
	var version int64
	err := r.db.WithContext(ctx).
		Model(&model.QValueSet{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, err
	}
	return uint64(version), nil
}
