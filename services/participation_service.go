package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"planit-api/models"
	"planit-api/repositories"
)

// ParticipationService drives the join state machine for a
// (user, event) pair: NotJoined -> PendingPayment -> Joined. A
// Participant row exists only in the Joined state; PendingPayment is a
// JoinRequest reservation with an expiry.
type ParticipationService struct {
	repo       *repositories.LedgerRepository
	pendingTTL time.Duration
}

func NewParticipationService(repo *repositories.LedgerRepository, pendingTTL time.Duration) *ParticipationService {
	return &ParticipationService{
		repo:       repo,
		pendingTTL: pendingTTL,
	}
}

// CheckMembership reports whether the user is a confirmed participant.
// Read-only; safe to call on every page load.
func (s *ParticipationService) CheckMembership(userID, eventID string) (bool, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrEventNotFound
	}

	_, err = s.repo.GetParticipant(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RequestJoin transitions NotJoined -> PendingPayment and returns the
// reservation the payment flow is redirected with. Calling it again
// while a reservation is live re-returns the same reference, so a user
// re-entering the payment page does not strand the first reservation.
func (s *ParticipationService) RequestJoin(userID, eventID string) (*models.JoinRequest, error) {
	joined, err := s.CheckMembership(userID, eventID)
	if err != nil {
		return nil, err
	}
	if joined {
		return nil, ErrAlreadyJoined
	}

	if pending, err := s.repo.PendingJoinRequest(userID, eventID); err == nil {
		return pending, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := &models.JoinRequest{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		Status:    models.JoinStatusPending,
		ExpiresAt: time.Now().Add(s.pendingTTL),
	}
	if err := s.repo.CreateJoinRequest(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ConfirmPayment is invoked by the payment processor on success and
// transitions PendingPayment -> Joined. It is idempotent: a duplicate
// callback for an already-joined pair returns the existing record. On
// any failure the state stays PendingPayment; the Participant row is
// only ever created inside the same transaction that consumes the
// reservation.
func (s *ParticipationService) ConfirmPayment(userID, eventID, paymentProof string) (*models.Participant, error) {
	if existing, err := s.repo.GetParticipant(userID, eventID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request, err := s.repo.PendingJoinRequest(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingJoin
		}
		return nil, err
	}

	if paymentProof == "" {
		return nil, ErrPaymentRejected
	}

	participant := &models.Participant{
		UserID:           userID,
		EventID:          eventID,
		PaymentConfirmed: true,
		PaymentRef:       paymentProof,
		JoinedAt:         time.Now(),
	}

	if err := s.repo.ConfirmJoinRequest(request, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantExists) {
			// Concurrent duplicate confirmation won; return its record.
			return s.repo.GetParticipant(userID, eventID)
		}
		return nil, fmt.Errorf("failed to confirm join: %w", err)
	}
	return participant, nil
}

// ResolveJoinRequest maps a payment reference back to its reservation.
func (s *ParticipationService) ResolveJoinRequest(reference string) (*models.JoinRequest, error) {
	request, err := s.repo.GetJoinRequest(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingJoin
		}
		return nil, err
	}
	return request, nil
}

// ExpireStaleRequests releases reservations whose payment never
// arrived; called by the background sweep job.
func (s *ParticipationService) ExpireStaleRequests() (int64, error) {
	return s.repo.ExpireStaleJoinRequests(time.Now())
}
