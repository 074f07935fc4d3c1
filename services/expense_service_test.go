package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"planit-api/services"
)

func TestListForEventEmptyVsMissing(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewExpenseService(ledger)

	// A fresh event has an empty expense list, not an error.
	expenses, err := svc.ListForEvent("event-1")
	if err != nil {
		t.Fatalf("ListForEvent on fresh event: %v", err)
	}
	if expenses == nil {
		t.Fatal("expected a non-nil empty slice")
	}
	if len(expenses) != 0 {
		t.Fatalf("expected no expenses, got %d", len(expenses))
	}

	// An unknown event is NotFound, keeping the two cases distinct.
	if _, err := svc.ListForEvent("no-such-event"); !errors.Is(err, services.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCreateThenGetOneRoundTrip(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewExpenseService(ledger)

	created, err := svc.Create("event-1", "owner-1", services.ExpenseInput{
		Name:        "Catering",
		Description: "Dinner for twenty",
		Amount:      decimal.RequireFromString("1250.50"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetOne("event-1", created.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}

	if got.Name != "Catering" || got.Description != "Dinner for twenty" {
		t.Fatalf("round trip changed fields: %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("1250.50")) {
		t.Fatalf("amount did not round-trip to two decimals, got %s", got.Amount)
	}
	if got.EventID != "event-1" {
		t.Fatalf("expense attached to wrong event: %s", got.EventID)
	}
}

func TestExpenseValidationBoundaries(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewExpenseService(ledger)

	cases := []struct {
		name  string
		input services.ExpenseInput
		field string
	}{
		{
			name:  "negative amount",
			input: services.ExpenseInput{Name: "x", Description: "d", Amount: decimal.RequireFromString("-0.01")},
			field: "amount",
		},
		{
			name:  "zero amount",
			input: services.ExpenseInput{Name: "x", Description: "d", Amount: decimal.Zero},
			field: "amount",
		},
		{
			name:  "empty name",
			input: services.ExpenseInput{Name: "", Description: "d", Amount: decimal.NewFromInt(5)},
			field: "name",
		},
		{
			name:  "blank description",
			input: services.ExpenseInput{Name: "x", Description: "   ", Amount: decimal.NewFromInt(5)},
			field: "description",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create("event-1", "owner-1", tc.input)
			var verr *services.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected a reason for field %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewExpenseService(ledger)

	created, err := svc.Create("event-1", "owner-1", services.ExpenseInput{
		Name:        "Venue",
		Description: "Hall rental",
		Amount:      decimal.NewFromInt(800),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(created.ID, services.ExpenseInput{
		Name:        "Venue deposit",
		Description: "Hall rental, deposit only",
		Amount:      decimal.RequireFromString("400.005"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "Venue deposit" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	// Quantized to two decimals on the way in.
	if !updated.Amount.Equal(decimal.RequireFromString("400.00")) {
		t.Fatalf("expected 400.00 after rounding, got %s", updated.Amount)
	}
	// The owning event never changes through update.
	if updated.EventID != "event-1" {
		t.Fatalf("update moved the expense to event %q", updated.EventID)
	}

	// Empty name on update is rejected with a field reason.
	_, err = svc.Update(created.ID, services.ExpenseInput{
		Name: "", Description: "d", Amount: decimal.NewFromInt(5),
	})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}

	// Unknown expense id is NotFound.
	if _, err := svc.Update("no-such-expense", services.ExpenseInput{
		Name: "x", Description: "d", Amount: decimal.NewFromInt(5),
	}); !errors.Is(err, services.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestGetOneWrongEvent(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")
	seedEvent(t, db, "event-2", "owner-1")

	svc := services.NewExpenseService(ledger)

	created, err := svc.Create("event-1", "owner-1", services.ExpenseInput{
		Name:        "Snacks",
		Description: "For the bus",
		Amount:      decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetOne("event-2", created.ID); !errors.Is(err, services.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound when scoped to the wrong event, got %v", err)
	}
}

func TestListExpensesPreservesInsertionOrder(t *testing.T) {
	db, ledger := newTestLedger(t)
	seedUser(t, db, "owner-1", "Owner")
	seedEvent(t, db, "event-1", "owner-1")

	svc := services.NewExpenseService(ledger)

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		if _, err := svc.Create("event-1", "owner-1", services.ExpenseInput{
			Name:        name,
			Description: "d",
			Amount:      decimal.NewFromInt(10),
		}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	expenses, err := svc.ListForEvent("event-1")
	if err != nil {
		t.Fatalf("ListForEvent: %v", err)
	}
	if len(expenses) != len(names) {
		t.Fatalf("expected %d expenses, got %d", len(names), len(expenses))
	}
	for i, name := range names {
		if expenses[i].Name != name {
			t.Fatalf("display order unstable: position %d is %q, want %q", i, expenses[i].Name, name)
		}
	}
}
