// File: /controllers/payment_controller.go
package controllers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"planit-api/repositories"
	"planit-api/services"
)

// PaymentController receives the payment processor's callbacks. It is
// authenticated with a shared webhook secret, not a user JWT, since
// the processor calls it server-to-server.
type PaymentController struct {
	repo          *repositories.LedgerRepository
	participation *services.ParticipationService
	email         *services.EmailService
	webhookSecret string
}

func NewPaymentController(repo *repositories.LedgerRepository, participation *services.ParticipationService,
	email *services.EmailService, webhookSecret string) *PaymentController {
	return &PaymentController{
		repo:          repo,
		participation: participation,
		email:         email,
		webhookSecret: webhookSecret,
	}
}

type ConfirmPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Proof     string `json:"proof"`
}

// ConfirmPayment handles POST /payments/confirm. Duplicate deliveries
// of the same success callback are safe: confirmation is idempotent
// per (user, event) pair.
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(pc.webhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := pc.participation.ResolveJoinRequest(req.Reference)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown payment reference"})
		return
	}

	if req.Status != "success" {
		// Failed payment leaves the reservation pending; it will be
		// retried by the processor or expire on its own.
		c.JSON(http.StatusOK, gin.H{"message": "Payment not successful, no membership recorded"})
		return
	}

	participant, err := pc.participation.ConfirmPayment(request.UserID, request.EventID, req.Proof)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingJoin):
			c.JSON(http.StatusConflict, gin.H{"error": "No live reservation for this reference"})
		case errors.Is(err, services.ErrPaymentRejected):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment proof missing"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		}
		return
	}

	pc.sendReceipt(participant.UserID, participant.EventID, participant.PaymentRef)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Payment confirmed, participant recorded",
		"participant": participant,
	})
}

// sendReceipt is best-effort; a mail failure never rolls back a
// confirmed membership.
func (pc *PaymentController) sendReceipt(userID, eventID, paymentRef string) {
	if pc.email == nil {
		return
	}

	user, err := pc.repo.GetUser(userID)
	if err != nil {
		fmt.Printf("Warning: could not load user for receipt: %v\n", err)
		return
	}
	event, err := pc.repo.GetEvent(eventID)
	if err != nil {
		fmt.Printf("Warning: could not load event for receipt: %v\n", err)
		return
	}

	go func() {
		if err := pc.email.SendJoinReceipt(user.Email, user.Name, event.Title, paymentRef); err != nil {
			fmt.Printf("Warning: failed to send join receipt: %v\n", err)
		}
	}()
}
