package model

import "time"

// DailyTollRecord is the audit trail of a computed daily toll total. One row
// is written per calendar day of each successful calculation.
type DailyTollRecord struct {
	ID          int64     `gorm:"primaryKey"`
	VehicleType string    `gorm:"size:32;index;not null" json:"vehicleType"`
	TollDate    time.Time `gorm:"index;not null" json:"tollDate"`
	FeeSek      int64     `gorm:"not null" json:"feeSek"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}
