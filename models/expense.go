// File: /models/expense.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a cost item attributed to exactly one event. Amounts are
// fixed-point decimals stored as DECIMAL(12,2) so totals render to two
// decimal places without floating-point drift.
type Expense struct {
	ID          string          `json:"id" gorm:"primaryKey;size:191"`
	EventID     string          `json:"event_id" gorm:"not null;size:191;index:idx_expenses_event_created"`
	Name        string          `json:"name" gorm:"not null;size:255"`
	Description string          `json:"description" gorm:"not null;type:text"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedBy   string          `json:"created_by" gorm:"size:191"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index:idx_expenses_event_created"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
