package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"planit-api/models"
	"planit-api/repositories"
)

// ExpenseService owns validation and persistence of per-event expense
// records. Amounts are quantized to two decimal places on the way in;
// updates are last-write-wins since the client sends no version token.
type ExpenseService struct {
	repo *repositories.LedgerRepository
}

func NewExpenseService(repo *repositories.LedgerRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

type ExpenseInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
}

// validate mirrors the client-side "fill all fields" gate. Zero is
// rejected along with negatives: a blank amount field parses to zero,
// so zero means unfilled, not free.
func validateExpenseInput(input ExpenseInput) error {
	verr := newValidationError()
	if strings.TrimSpace(input.Name) == "" {
		verr.Fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		verr.Fields["description"] = "description is required"
	}
	if !input.Amount.IsPositive() {
		verr.Fields["amount"] = "amount must be greater than 0"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ListForEvent returns the event's expenses in creation order. An
// event with no expenses yields an empty list; an unknown event is an
// error, keeping "empty" and "not found" distinct for the client.
func (s *ExpenseService) ListForEvent(eventID string) ([]models.Expense, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}
	return s.repo.ListExpenses(eventID)
}

func (s *ExpenseService) GetOne(eventID, expenseID string) (*models.Expense, error) {
	expense, err := s.repo.GetExpense(expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	if expense.EventID != eventID {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *ExpenseService) Create(eventID, createdBy string, input ExpenseInput) (*models.Expense, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	if err := validateExpenseInput(input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          uuid.New().String(),
		EventID:     eventID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount.Round(2),
		CreatedBy:   createdBy,
	}
	if err := s.repo.PutExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Update rewrites name, description and amount. The owning event never
// changes through this path.
func (s *ExpenseService) Update(expenseID string, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.repo.GetExpense(expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if err := validateExpenseInput(input); err != nil {
		return nil, err
	}

	expense.Name = strings.TrimSpace(input.Name)
	expense.Description = strings.TrimSpace(input.Description)
	expense.Amount = input.Amount.Round(2)
	expense.UpdatedAt = time.Now()

	if err := s.repo.PutExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}
