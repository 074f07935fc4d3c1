// File: /controllers/expense_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"planit-api/services"
	"planit-api/utils"
)

type ExpenseController struct {
	expenses *services.ExpenseService
}

func NewExpenseController(expenses *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

// ExpenseRequest is the body of both create and update; the update
// form on the client always submits all three fields.
type ExpenseRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (xc *ExpenseController) input(req ExpenseRequest) services.ExpenseInput {
	return services.ExpenseInput{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
	}
}

func (xc *ExpenseController) handleError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
	case errors.As(err, &verr):
		utils.SendValidationError(c, verr.Fields)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process expense"})
	}
}

// ListForEvent serves GET /expenses/event/:id. An event without
// expenses answers with an empty array so the client can render its
// "No expenses added" state.
func (xc *ExpenseController) ListForEvent(c *gin.Context) {
	eventID := c.Param("id")

	expenses, err := xc.expenses.ListForEvent(eventID)
	if err != nil {
		xc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (xc *ExpenseController) GetExpense(c *gin.Context) {
	eventID := c.Param("id")
	expenseID := c.Param("expenseId")

	expense, err := xc.expenses.GetOne(eventID, expenseID)
	if err != nil {
		xc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (xc *ExpenseController) CreateExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := xc.expenses.Create(eventID, userID, xc.input(req))
	if err != nil {
		xc.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (xc *ExpenseController) UpdateExpense(c *gin.Context) {
	expenseID := c.Param("id")

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := xc.expenses.Update(expenseID, xc.input(req))
	if err != nil {
		xc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}
