package mapper

import (
	"encoding/json"
	"fmt"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"

	"gorm.io/datatypes"
)

type QValueMapper struct{}

func NewQValueMapper() *QValueMapper {
	return &QValueMapper{}
}

func (m *QValueMapper) ToEntity(q *model.QValueSet) (*entity.QValueSet, error) {
	if q == nil {
		return nil, nil
	}

	estimates := make(map[string]float64)
	if len(q.Estimates) > 0 {
		if err := json.Unmarshal(q.Estimates, &estimates); err != nil {
			return nil, fmt.Errorf("decode estimates of %s: %w", q.Name, err)
		}
	}

	return &entity.QValueSet{
		Name:      q.Name,
		Estimates: estimates,
		Version:   uint64(q.Version),
		UpdatedAt: q.UpdatedAt,
	}, nil
}

func (m *QValueMapper) ToModel(q *entity.QValueSet) (*model.QValueSet, error) {
	if q == nil {
		return nil, nil
	}

	raw, err := json.Marshal(q.Estimates)
	if err != nil {
		return nil, fmt.Errorf("encode estimates of %s: %w", q.Name, err)
	}

	return &model.QValueSet{
		Name:      q.Name,
		Estimates: datatypes.JSON(raw),
		Version:   int64(q.Version),
		UpdatedAt: q.UpdatedAt,
	}, nil
}
