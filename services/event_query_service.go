package services

import (
	"errors"

	"gorm.io/gorm"
	"planit-api/models"
	"planit-api/repositories"
)

// EventQueryService is the read-side facade the detail page consumes:
// one call returning the event, the caller's membership and the
// expense list. The three reads are best-effort consistent, not
// transactional; a join racing a read surfaces on the next load.
type EventQueryService struct {
	repo          *repositories.LedgerRepository
	participation *ParticipationService
}

func NewEventQueryService(repo *repositories.LedgerRepository, participation *ParticipationService) *EventQueryService {
	return &EventQueryService{
		repo:          repo,
		participation: participation,
	}
}

type EventView struct {
	Event    *models.Event    `json:"event"`
	IsJoined bool             `json:"is_joined"`
	Expenses []models.Expense `json:"expenses"`
}

func (s *EventQueryService) GetEventView(eventID, requestingUserID string) (*EventView, error) {
	event, err := s.repo.GetEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	isJoined, err := s.participation.CheckMembership(requestingUserID, eventID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListExpenses(eventID)
	if err != nil {
		return nil, err
	}

	return &EventView{
		Event:    event,
		IsJoined: isJoined,
		Expenses: expenses,
	}, nil
}
