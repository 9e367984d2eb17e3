package entity

import "time"

// QValueSet is the persisted state of one candidate set.
type QValueSet struct {
	Name      string
	Estimates map[string]float64
	Version   uint64
	UpdatedAt time.Time
}
