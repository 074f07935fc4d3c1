// File: /models/join_request.go
package models

import (
	"time"
)

type JoinRequestStatus string

const (
	JoinStatusPending   JoinRequestStatus = "pending"
	JoinStatusConfirmed JoinRequestStatus = "confirmed"
	JoinStatusExpired   JoinRequestStatus = "expired"
)

// JoinRequest is the PendingPayment reservation between requesting to
// join an event and the payment processor confirming. Its ID is the
// reference handed to the payment flow. A pending request past
// ExpiresAt is treated as dead even before the sweep job marks it.
type JoinRequest struct {
	ID        string            `json:"reference" gorm:"primaryKey;size:191"`
	EventID   string            `json:"event_id" gorm:"not null;size:191;index:idx_join_requests_event_user"`
	UserID    string            `json:"user_id" gorm:"not null;size:191;index:idx_join_requests_event_user"`
	Status    JoinRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt time.Time         `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

// Expired reports whether a pending reservation has aged out.
func (jr *JoinRequest) Expired(now time.Time) bool {
	return jr.Status == JoinStatusPending && now.After(jr.ExpiresAt)
}
