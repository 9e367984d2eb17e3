package model

import (
	"time"

	"gorm.io/datatypes"
)

// QValueSet stores one candidate set per row. Estimates maps the exact
// authored reply text to its q-value.
type QValueSet struct {
	Name      string         `gorm:"type:varchar(64);primaryKey" json:"name"`
	Estimates datatypes.JSON `gorm:"type:jsonb;not null" json:"estimates"`
	Version   int64          `gorm:"not null;default:0;index:idx_q_value_sets_version" json:"version"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (QValueSet) TableName() string {
	return "q_value_sets"
}
