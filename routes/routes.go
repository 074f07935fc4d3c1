// File: /routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"planit-api/config"
	"planit-api/controllers"
	"planit-api/middleware"
	"planit-api/repositories"
	"planit-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Webhook-Secret"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Wiring: repository -> services -> controllers
	ledger := repositories.NewLedgerRepository(db)
	participationService := services.NewParticipationService(ledger, cfg.PendingJoinTTL)
	expenseService := services.NewExpenseService(ledger)
	queryService := services.NewEventQueryService(ledger, participationService)

	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	eventController := controllers.NewEventController(ledger, participationService, queryService, cfg.PaymentPageURL)
	expenseController := controllers.NewExpenseController(expenseService)
	paymentController := controllers.NewPaymentController(ledger, participationService, emailService, cfg.PaymentWebhookSecret)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
	}

	// Payment processor callback (webhook secret, not JWT)
	v1.POST("/payments/confirm", paymentController.ConfirmPayment)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		events := protected.Group("/events")
		{
			events.GET("/", eventController.GetEvents)
			events.POST("/", eventController.CreateEvent)
			events.GET("/joined", eventController.GetJoinedEvents)
			events.GET("/created", eventController.GetCreatedEvents)
			events.GET("/:id", eventController.GetEvent)
			events.GET("/:id/participants", eventController.GetParticipants)
			events.GET("/:id/view", eventController.GetEventView)
			events.POST("/:id/join", eventController.JoinEvent)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("/event/:id", expenseController.ListForEvent)
			expenses.POST("/event/:id", expenseController.CreateExpense)
			expenses.GET("/event/:id/:expenseId", expenseController.GetExpense)
			expenses.PUT("/:id", expenseController.UpdateExpense)
		}
	}
}
