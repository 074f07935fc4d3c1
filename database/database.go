// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"planit-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Participant{},
		&models.JoinRequest{},
		&models.Expense{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// The expiry sweep scans pending requests by status and deadline.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_join_requests_status_expires ON join_requests(status, expires_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for join_requests: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_owner_date ON events(owner_id, date ASC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	return nil
}

func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:       "user-1",
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "$2a$10$dummy", // This should be properly hashed in real scenarios
		},
		{
			ID:       "user-2",
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Password: "$2a$10$dummy",
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	testEvent := models.Event{
		ID:          "event-1",
		Title:       "Goa Beach Weekend",
		Description: "Three days at Baga beach with the whole crew. Shared villa, shared rides, shared everything.",
		Date:        time.Now().AddDate(0, 1, 0),
		Location: models.Location{
			Name:    "Baga Beach",
			Address: "Baga Beach Rd, Baga, Goa 403516",
		},
		Fee:     decimal.NewFromInt(1500),
		OwnerID: "user-1",
	}
	if err := db.Create(&testEvent).Error; err != nil {
		fmt.Printf("Warning: Could not create test event: %v\n", err)
		return nil
	}

	// Owner is a participant of their own event, no payment needed.
	owner := models.Participant{
		UserID:           "user-1",
		EventID:          testEvent.ID,
		PaymentConfirmed: true,
		JoinedAt:         time.Now(),
	}
	if err := db.Create(&owner).Error; err != nil {
		fmt.Printf("Warning: Could not create owner participant: %v\n", err)
	}

	testExpenses := []models.Expense{
		{
			ID:          "expense-1",
			EventID:     testEvent.ID,
			Name:        "Villa booking",
			Description: "Two-night stay, 6 rooms",
			Amount:      decimal.NewFromFloat(24000.00),
			CreatedBy:   "user-1",
		},
		{
			ID:          "expense-2",
			EventID:     testEvent.ID,
			Name:        "Cab from airport",
			Description: "Two tempo travellers",
			Amount:      decimal.NewFromFloat(3600.50),
			CreatedBy:   "user-1",
		},
	}
	for _, expense := range testExpenses {
		if err := db.Create(&expense).Error; err != nil {
			fmt.Printf("Warning: Could not create test expense %s: %v\n", expense.Name, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
