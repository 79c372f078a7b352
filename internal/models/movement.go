package models

import "time"

type MovementType string

const (
	MovementInward  MovementType = "INWARD"
	MovementOutward MovementType = "OUTWARD"
)

func (t MovementType) Valid() bool {
	return t == MovementInward || t == MovementOutward
}

// Movement: one inward or outward ledger entry against a vehicle.
// Quantity is stored as text exactly as entered and parsed when the
// on-hand figure is folded.
type Movement struct {
	ID        uint `gorm:"primaryKey"`
	VehicleID uint `gorm:"index;not null"`
	Vehicle   Vehicle
	Type      MovementType `gorm:"size:10;not null"`
	Date      time.Time    `gorm:"index;not null"`
	Quantity  string       `gorm:"size:50;not null"`
	Notes     string       `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
