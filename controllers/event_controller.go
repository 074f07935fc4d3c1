// File: /controllers/event_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"planit-api/models"
	"planit-api/repositories"
	"planit-api/services"
	"planit-api/utils"
)

type EventController struct {
	repo          *repositories.LedgerRepository
	participation *services.ParticipationService
	query         *services.EventQueryService
	paymentURL    string
}

func NewEventController(repo *repositories.LedgerRepository, participation *services.ParticipationService,
	query *services.EventQueryService, paymentURL string) *EventController {
	return &EventController{
		repo:          repo,
		participation: participation,
		query:         query,
		paymentURL:    paymentURL,
	}
}

type CreateEventRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	LocationName    string          `json:"location_name" binding:"required"`
	LocationAddress string          `json:"location_address"`
	Fee             decimal.Decimal `json:"fee"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	events, err := ec.repo.ListUpcomingEvents(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"page":   page,
		"limit":  limit,
	})
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate event date is in the future
	if req.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event date must be in the future"})
		return
	}

	if req.Fee.IsNegative() {
		utils.SendValidationError(c, map[string]string{"fee": "fee cannot be negative"})
		return
	}

	event := models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location: models.Location{
			Name:    req.LocationName,
			Address: req.LocationAddress,
		},
		Fee:     req.Fee.Round(2),
		OwnerID: userID,
	}

	if err := ec.repo.CreateEvent(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	// The organizer is a participant of their own event without going
	// through the payment flow.
	owner := models.Participant{
		UserID:           userID,
		EventID:          event.ID,
		PaymentConfirmed: true,
		JoinedAt:         time.Now(),
	}
	if err := ec.repo.PutParticipant(&owner); err != nil {
		fmt.Printf("Warning: could not add organizer as participant: %v\n", err)
	}

	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	event, err := ec.repo.GetEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetParticipants returns the confirmed members of an event. The
// detail page scans this list for the logged-in user's id to decide
// whether to disable the join button.
func (ec *EventController) GetParticipants(c *gin.Context) {
	eventID := c.Param("id")

	exists, err := ec.repo.EventExists(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	participants, err := ec.repo.ListParticipants(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, participants)
}

// GetEventView composes the whole detail page payload in one call.
func (ec *EventController) GetEventView(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	view, err := ec.query.GetEventView(eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event view"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// JoinEvent starts the payment-gated join: it reserves the (user,
// event) pair and answers with the reference the payment page needs.
// Membership itself is only written when the payment processor calls
// the confirmation webhook.
func (ec *EventController) JoinEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	request, err := ec.participation.RequestJoin(userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, services.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": "You have already joined this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request join"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":   request.ID,
		"payment_url": fmt.Sprintf("%s/%s?ref=%s", ec.paymentURL, eventID, request.ID),
		"expires_at":  request.ExpiresAt,
	})
}

func (ec *EventController) GetJoinedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	events, err := ec.repo.ListEventsJoinedBy(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch joined events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (ec *EventController) GetCreatedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	events, err := ec.repo.ListEventsByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
