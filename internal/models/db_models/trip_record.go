package db_models

import "time"

// TripRecord archives the latest state of a generated trip.
type TripRecord struct {
	BaseModel
	TripID    string `gorm:"uniqueIndex;not null"`
	Name      string
	TripType  string `gorm:"index"`
	StartDate *time.Time
	EndDate   *time.Time
	Payload   string `gorm:"type:text"`
}
