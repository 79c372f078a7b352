package database

import (
	"log"

	"bondyard-backend/internal/config"
	"bondyard-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] database connection failed: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("[FATAL] database migration failed: %v", err)
	}

	log.Println("[INFO] database connected, migration complete")
}

// Migrate applies the schema on any GORM connection. Tests run it against
// an in-memory sqlite database instead of Postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Movement{},
		&models.Attachment{},
	)
}
