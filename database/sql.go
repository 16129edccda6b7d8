package database

import (
	"context"
	"log"

	"slotwise/config"
	"slotwise/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLDB is the global gorm handle used when STORE_DRIVER=postgres.
var SQLDB *gorm.DB

// InitSQL opens the Postgres connection and migrates the schema.
func InitSQL() {
	db, err := gorm.Open(postgres.Open(config.AppConfig.PostgresDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate Postgres schema: %v", err)
	}
	SQLDB = db
	log.Println("Connected to Postgres successfully!")
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Service{},
		&models.AvailabilityDay{},
		&models.Reservation{},
		&models.ProviderTier{},
		&models.Account{},
		&models.Address{},
	)
}

// PingSQL is used by the health monitor.
func PingSQL(ctx context.Context) error {
	sqlDB, err := SQLDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
