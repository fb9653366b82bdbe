package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brightbasket/brightbasket-golang/internal/checkout"
	"github.com/brightbasket/brightbasket-golang/internal/database"
	"github.com/brightbasket/brightbasket-golang/internal/handlers"
	"github.com/brightbasket/brightbasket-golang/internal/payments"
	"github.com/brightbasket/brightbasket-golang/internal/routes"
	"github.com/joho/godotenv"
)

// staleSessionAge is how long a payment session may sit pending before the
// reconciliation worker flags it abandoned.
const staleSessionAge = 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.Migrate(db, migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// --- Token Signing ---
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	// --- Payment Gateway ---
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		log.Fatal("STRIPE_SECRET_KEY environment variable is not set")
	}
	gateway := payments.NewStripeGateway(stripeKey)

	// --- Checkout Service ---
	checkoutService := checkout.NewService(checkout.NewSQLStore(db), gateway)

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}

	app := &handlers.Handlers{
		DB:             db,
		Checkout:       checkoutService,
		FrontendOrigin: frontendOrigin,
	}

	// --- Background Worker ---
	// Flags payment sessions that were opened but never confirmed, so an
	// operator can reconcile them against the processor.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background worker started: monitoring for stale checkout sessions")

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			checkoutService.ReconcileStaleSessions(ctx, staleSessionAge)
			cancel()
		}
	}()

	// --- Router & Server ---
	router := routes.SetupRouter(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting BrightBasket API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
