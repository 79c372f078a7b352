package models

import "time"

type VehicleStatus string

const (
	StatusInBond   VehicleStatus = "In Bond"
	StatusReleased VehicleStatus = "Released"
	StatusSold     VehicleStatus = "Sold"
	StatusHold     VehicleStatus = "Hold"
)

// VehicleStatuses lists every valid status, in the order clients show them.
var VehicleStatuses = []VehicleStatus{StatusInBond, StatusReleased, StatusSold, StatusHold}

func (s VehicleStatus) Valid() bool {
	for _, v := range VehicleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Vehicle: one unit held in the bonded yard. On-hand quantity is never
// stored here; it is derived from the movement ledger on every read.
type Vehicle struct {
	ID           uint   `gorm:"primaryKey"`
	VIN          string `gorm:"size:64;index"`
	StockNo      string `gorm:"size:50;index"`
	Make         string `gorm:"size:100"`
	Model        string `gorm:"size:100"`
	Year         int
	Color        string        `gorm:"size:50"`
	YardLocation string        `gorm:"size:100"` // bay/row inside the yard
	Status       VehicleStatus `gorm:"size:20;not null;default:'In Bond'"`
	Supplier     string        `gorm:"size:150"`
	Buyer        string        `gorm:"size:150"`
	InDate       *time.Time    `gorm:"index"` // customs entry date
	OutDate      *time.Time
	Notes        string `gorm:"size:1000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Movements   []Movement   `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}
