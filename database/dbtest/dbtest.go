// Package dbtest opens throwaway SQLite databases with the service schema for
// package tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"slotwise/database"
	"slotwise/database/repository"
	"slotwise/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database private to t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.New().String()[:8])
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// One connection serializes writers the way a single primary would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Repositories returns gorm-backed repositories over a fresh database.
func Repositories(t *testing.T) (*repository.Repositories, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return repository.NewGormRepositories(db), db
}

// SeedAccount inserts an account, failing the test on error.
func SeedAccount(t *testing.T, db *gorm.DB, acc models.Account) {
	t.Helper()
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed account %s: %v", acc.ID, err)
	}
}

// SeedReservation inserts a reservation as-is, failing the test on error.
func SeedReservation(t *testing.T, db *gorm.DB, res *models.Reservation) {
	t.Helper()
	if res.Revision == 0 {
		res.Revision = 1
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("seed reservation %s: %v", res.ID, err)
	}
}
