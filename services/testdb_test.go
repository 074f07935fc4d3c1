package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"planit-api/database"
	"planit-api/models"
	"planit-api/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "planit_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestLedger(t *testing.T) (*gorm.DB, *repositories.LedgerRepository) {
	t.Helper()
	db := newTestDB(t)
	return db, repositories.NewLedgerRepository(db)
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	user := models.User{
		ID:       id,
		Name:     name,
		Email:    id + "@example.com",
		Password: "$2a$10$dummy",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

func seedEvent(t *testing.T, db *gorm.DB, id, ownerID string) *models.Event {
	t.Helper()
	event := models.Event{
		ID:          id,
		Title:       "Test Event " + id,
		Description: "A gathering",
		Date:        time.Now().AddDate(0, 0, 7),
		Location: models.Location{
			Name:    "Community Hall",
			Address: "12 Main St",
		},
		Fee:     decimal.NewFromInt(500),
		OwnerID: ownerID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event %s: %v", id, err)
	}
	return &event
}
