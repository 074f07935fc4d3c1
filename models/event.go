// File: /models/event.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is embedded in Event and serialized as a nested object,
// matching the shape the detail page renders.
type Location struct {
	Name    string `json:"name" gorm:"column:location_name;not null;size:255"`
	Address string `json:"address" gorm:"column:location_address;size:500"`
}

type Event struct {
	ID          string          `json:"id" gorm:"primaryKey;size:191"`
	Title       string          `json:"title" gorm:"not null;size:255"`
	Description string          `json:"description" gorm:"not null;type:text"`
	Date        time.Time       `json:"date" gorm:"not null"`
	Location    Location        `json:"location" gorm:"embedded"`
	Fee         decimal.Decimal `json:"fee" gorm:"type:decimal(12,2);not null;default:0"`
	OwnerID     string          `json:"owner_id" gorm:"not null;size:191;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	Owner        User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:EventID"`
	Expenses     []Expense     `json:"expenses,omitempty" gorm:"foreignKey:EventID"`
}

// Participant links a user to an event after payment has been
// confirmed. The composite unique index keeps the relation a set:
// at most one row per (event, user) even under concurrent joins.
type Participant struct {
	RecordID uint `json:"-" gorm:"primaryKey"`

	// Serialized as "id" because the detail page matches membership
	// against participant.id === userId.
	UserID           string    `json:"id" gorm:"not null;size:191;uniqueIndex:idx_participants_event_user"`
	EventID          string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_participants_event_user"`
	PaymentConfirmed bool      `json:"payment_confirmed" gorm:"default:false"`
	PaymentRef       string    `json:"-" gorm:"size:255"`
	JoinedAt         time.Time `json:"joined_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
