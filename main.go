// File: /main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"planit-api/config"
	"planit-api/database"
	"planit-api/jobs"
	"planit-api/middleware"
	"planit-api/routes"
	"planit-api/services"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Amounts serialize as JSON numbers so the client's toFixed(2)
	// round-trips without precision loss.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security + rate limiting
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 20))
	router.Use(middleware.ValidateJSON())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Sweep abandoned payment reservations
	expiryJob := jobs.NewJoinExpiryJob(db, cfg.PendingJoinTTL, 5*time.Minute)
	expiryJob.Start()
	defer expiryJob.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting PlanIt API server on port %s", cfg.Port)
		log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
