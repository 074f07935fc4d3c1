package services_test

import (
	"errors"
	"testing"
	"time"

	"planit-api/models"
	"planit-api/services"
)

func TestJoinLifecycle(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewParticipationService(ledger, 30*time.Minute)

	joined, err := svc.CheckMembership("user-1", "event-1")
	if err != nil {
		t.Fatalf("CheckMembership: %v", err)
	}
	if joined {
		t.Fatal("expected NotJoined before any join request")
	}

	request, err := svc.RequestJoin("user-1", "event-1")
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if request.ID == "" {
		t.Fatal("expected a payment reference on the join request")
	}
	if request.Status != models.JoinStatusPending {
		t.Fatalf("expected pending status, got %q", request.Status)
	}

	// Requesting again while pending must not mint a second reservation.
	again, err := svc.RequestJoin("user-1", "event-1")
	if err != nil {
		t.Fatalf("second RequestJoin: %v", err)
	}
	if again.ID != request.ID {
		t.Fatalf("expected the same pending reference, got %q and %q", request.ID, again.ID)
	}

	// A check during PendingPayment still reports NotJoined.
	joined, err = svc.CheckMembership("user-1", "event-1")
	if err != nil {
		t.Fatalf("CheckMembership while pending: %v", err)
	}
	if joined {
		t.Fatal("PendingPayment must not count as Joined")
	}

	participant, err := svc.ConfirmPayment("user-1", "event-1", "txn-12345")
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if !participant.PaymentConfirmed {
		t.Fatal("participant should carry the payment confirmation flag")
	}

	joined, err = svc.CheckMembership("user-1", "event-1")
	if err != nil {
		t.Fatalf("CheckMembership after confirm: %v", err)
	}
	if !joined {
		t.Fatal("expected Joined after payment confirmation")
	}

	// Joined is terminal: another join request is refused.
	if _, err := svc.RequestJoin("user-1", "event-1"); !errors.Is(err, services.ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewParticipationService(ledger, 30*time.Minute)

	if _, err := svc.RequestJoin("user-1", "event-1"); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	first, err := svc.ConfirmPayment("user-1", "event-1", "txn-1")
	if err != nil {
		t.Fatalf("first ConfirmPayment: %v", err)
	}

	// Duplicate webhook delivery returns the existing record.
	second, err := svc.ConfirmPayment("user-1", "event-1", "txn-1")
	if err != nil {
		t.Fatalf("duplicate ConfirmPayment: %v", err)
	}
	if first.RecordID != second.RecordID {
		t.Fatalf("duplicate confirmation created a new participant: %d vs %d", first.RecordID, second.RecordID)
	}

	participants, err := ledger.ListParticipants("event-1")
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	if len(participants) != 1 {
		t.Fatalf("expected exactly one participant, got %d", len(participants))
	}
}

func TestConfirmPaymentWithoutRequest(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewParticipationService(ledger, 30*time.Minute)

	if _, err := svc.ConfirmPayment("user-1", "event-1", "txn-1"); !errors.Is(err, services.ErrNoPendingJoin) {
		t.Fatalf("expected ErrNoPendingJoin, got %v", err)
	}

	// State must remain NotJoined after the failed confirmation.
	joined, err := svc.CheckMembership("user-1", "event-1")
	if err != nil {
		t.Fatalf("CheckMembership: %v", err)
	}
	if joined {
		t.Fatal("failed confirmation must not create a participant")
	}
}

func TestConfirmPaymentEmptyProof(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewParticipationService(ledger, 30*time.Minute)

	if _, err := svc.RequestJoin("user-1", "event-1"); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	if _, err := svc.ConfirmPayment("user-1", "event-1", ""); !errors.Is(err, services.ErrPaymentRejected) {
		t.Fatalf("expected ErrPaymentRejected, got %v", err)
	}

	// The reservation stays pending so a valid retry can still land.
	if _, err := svc.ConfirmPayment("user-1", "event-1", "txn-2"); err != nil {
		t.Fatalf("retry after rejected proof: %v", err)
	}
}

func TestExpiredReservationRefused(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	// TTL in the past: the reservation is born expired.
	svc := services.NewParticipationService(ledger, -time.Minute)

	request, err := svc.RequestJoin("user-1", "event-1")
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if !request.Expired(time.Now()) {
		t.Fatal("expected the reservation to be past its deadline")
	}

	if _, err := svc.ConfirmPayment("user-1", "event-1", "txn-1"); !errors.Is(err, services.ErrNoPendingJoin) {
		t.Fatalf("expected ErrNoPendingJoin for an expired reservation, got %v", err)
	}

	// The user can start over after expiry: a fresh reference is minted.
	fresh, err := svc.RequestJoin("user-1", "event-1")
	if err != nil {
		t.Fatalf("RequestJoin after expiry: %v", err)
	}
	if fresh.ID == request.ID {
		t.Fatal("expected a new reservation after the old one expired")
	}
}

func TestExpireStaleRequestsSweep(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewParticipationService(ledger, -time.Minute)
	if _, err := svc.RequestJoin("user-1", "event-1"); err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	expired, err := svc.ExpireStaleRequests()
	if err != nil {
		t.Fatalf("ExpireStaleRequests: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired reservation, got %d", expired)
	}

	var request models.JoinRequest
	if err := db.First(&request, "user_id = ?", "user-1").Error; err != nil {
		t.Fatalf("loading swept request: %v", err)
	}
	if request.Status != models.JoinStatusExpired {
		t.Fatalf("expected expired status after sweep, got %q", request.Status)
	}
}

func TestRequestJoinUnknownEvent(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "user-1", "John")

	svc := services.NewParticipationService(ledger, 30*time.Minute)

	if _, err := svc.RequestJoin("user-1", "no-such-event"); !errors.Is(err, services.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := svc.CheckMembership("user-1", "no-such-event"); !errors.Is(err, services.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound from CheckMembership, got %v", err)
	}
}
