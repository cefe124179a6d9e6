// database/config_db.go - separate store for the competition config row
package database

import (
	"log"
	"os"
	"time"

	"cipherboard/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var configDB *gorm.DB

// InitConfigDB opens the config store. The config row historically lives in
// its own database; CONFIG_DATABASE_URL points at it and defaults to the main
// store's DSN. A single row is seeded if the table is empty.
func InitConfigDB() {
	dsn := os.Getenv("CONFIG_DATABASE_URL")
	if dsn == "" {
		dsn = MainDSN()
	}

	var err error
	configDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to config database: %v", err)
	}

	if err := configDB.AutoMigrate(&models.CompetitionConfig{}); err != nil {
		log.Fatalf("Failed to migrate config store: %v", err)
	}

	var count int64
	configDB.Model(&models.CompetitionConfig{}).Count(&count)
	if count == 0 {
		seed := models.CompetitionConfig{ActiveDay: 0, Released: false, RegistrationOpen: true}
		if err := configDB.Create(&seed).Error; err != nil {
			log.Fatalf("Failed to seed config row: %v", err)
		}
		log.Println("Config row seeded")
	}

	log.Println("Config store connected")
}

// GetConfigDB returns the config store instance
func GetConfigDB() *gorm.DB {
	if configDB == nil {
		log.Fatal("Config store not initialized. Call InitConfigDB() first.")
	}
	return configDB
}
