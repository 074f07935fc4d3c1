package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"planit-api/models"
)

var (
	// ErrParticipantExists is returned when a (user, event) pair is
	// already present in the participants table.
	ErrParticipantExists = errors.New("participant already exists for this user and event")

	// ErrInvalidExpense is returned for expenses missing required
	// fields or carrying a non-positive amount.
	ErrInvalidExpense = errors.New("expense requires name, description and a positive amount")
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetEvent retrieves an event by id with its owner preloaded.
func (r *LedgerRepository) GetEvent(eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Owner").First(&event, "id = ?", eventID).Error
	if err != nil {
		return nil, err
	}
	event.Owner.Password = ""
	return &event, nil
}

func (r *LedgerRepository) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EventExists is a cheap existence check used before writing child
// records, enforcing the referential invariant at write time.
func (r *LedgerRepository) EventExists(eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LedgerRepository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

// ListUpcomingEvents returns future events, soonest first.
func (r *LedgerRepository) ListUpcomingEvents(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Owner").
		Where("date > ?", time.Now()).
		Order("date ASC").Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Owner.Password = ""
	}
	return events, nil
}

func (r *LedgerRepository) ListEventsByOwner(ownerID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("owner_id = ?", ownerID).Order("date ASC").Find(&events).Error
	return events, err
}

// ListEventsJoinedBy returns the events a user participates in, via
// the membership relation.
func (r *LedgerRepository) ListEventsJoinedBy(userID string) ([]models.Event, error) {
	var participants []models.Participant
	err := r.db.Preload("Event").Where("user_id = ?", userID).Find(&participants).Error
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(participants))
	for _, participant := range participants {
		if participant.Event.ID == "" {
			continue // event archived; membership kept for audit
		}
		events = append(events, participant.Event)
	}
	return events, nil
}

// ListParticipants returns the confirmed members of an event. Order is
// not significant; the (event, user) unique index gives set semantics.
func (r *LedgerRepository) ListParticipants(eventID string) ([]models.Participant, error) {
	participants := []models.Participant{}
	err := r.db.Preload("User").Where("event_id = ?", eventID).Find(&participants).Error
	if err != nil {
		return nil, err
	}
	for i := range participants {
		participants[i].User.Password = ""
	}
	return participants, nil
}

func (r *LedgerRepository) GetParticipant(userID, eventID string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// PutParticipant inserts a membership record. The write is a single
// create guarded by the composite unique index, so two concurrent
// confirmations cannot both succeed.
func (r *LedgerRepository) PutParticipant(participant *models.Participant) error {
	var existing models.Participant
	err := r.db.Where("user_id = ? AND event_id = ?", participant.UserID, participant.EventID).
		First(&existing).Error
	if err == nil {
		return ErrParticipantExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.Create(participant).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrParticipantExists
		}
		return err
	}
	return nil
}

// ListExpenses returns an event's expenses in creation order so the
// table on the detail page is stable across reloads. A fresh event
// yields an empty slice, never an error.
func (r *LedgerRepository) ListExpenses(eventID string) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *LedgerRepository) GetExpense(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.First(&expense, "id = ?", expenseID).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// PutExpense inserts or updates an expense by id. The save runs in one
// transaction per entity; concurrent readers never observe a torn row.
func (r *LedgerRepository) PutExpense(expense *models.Expense) error {
	if strings.TrimSpace(expense.Name) == "" ||
		strings.TrimSpace(expense.Description) == "" ||
		!expense.Amount.IsPositive() {
		return ErrInvalidExpense
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(expense).Error
	})
}

// Join request storage

func (r *LedgerRepository) GetJoinRequest(reference string) (*models.JoinRequest, error) {
	var request models.JoinRequest
	err := r.db.First(&request, "id = ?", reference).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// PendingJoinRequest returns the live pending reservation for a
// (user, event) pair, if any.
func (r *LedgerRepository) PendingJoinRequest(userID, eventID string) (*models.JoinRequest, error) {
	var request models.JoinRequest
	err := r.db.Where("user_id = ? AND event_id = ? AND status = ? AND expires_at > ?",
		userID, eventID, models.JoinStatusPending, time.Now()).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *LedgerRepository) CreateJoinRequest(request *models.JoinRequest) error {
	return r.db.Create(request).Error
}

// ConfirmJoinRequest flips the reservation to confirmed and creates the
// participant in the same transaction, so a crash between the two can
// never leave a half-created membership.
func (r *LedgerRepository) ConfirmJoinRequest(request *models.JoinRequest, participant *models.Participant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.JoinRequest{}).
			Where("id = ? AND status = ?", request.ID, models.JoinStatusPending).
			Update("status", models.JoinStatusConfirmed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race to another confirmation callback.
			return ErrParticipantExists
		}

		if err := tx.Create(participant).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrParticipantExists
			}
			return err
		}
		return nil
	})
}

// ExpireStaleJoinRequests marks pending reservations past their expiry
// so abandoned payment flows release the (user, event) pair.
func (r *LedgerRepository) ExpireStaleJoinRequests(now time.Time) (int64, error) {
	result := r.db.Model(&models.JoinRequest{}).
		Where("status = ? AND expires_at < ?", models.JoinStatusPending, now).
		Update("status", models.JoinStatusExpired)
	return result.RowsAffected, result.Error
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
