package models

import "time"

// Attachment: an uploaded document or photo tied to a vehicle. StorageKey is
// the backend-private object key; URL is what clients fetch (a static path
// for the local backend, a bucket URL for the s3 backend).
type Attachment struct {
	ID         uint `gorm:"primaryKey"`
	VehicleID  uint `gorm:"index;not null"`
	Vehicle    Vehicle
	FileName   string `gorm:"size:255;not null"` // original client filename
	MimeType   string `gorm:"size:100"`
	Size       int64  `gorm:"not null"`
	StorageKey string `gorm:"size:255;not null"`
	URL        string `gorm:"size:500;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
