package database

import (
	"fmt"
	"log"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Open sürücüye göre gorm bağlantısı açar. sqlite yerel geliştirme ve testler içindir.
func Open(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		// Bellek içi veritabanında her bağlantı ayrı bir veritabanı görür
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %s", driver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PlannedEntry{},
		&models.CloseDayEntry{},
		&models.DonationRequest{},
		&models.AuditLog{},
	)
}
