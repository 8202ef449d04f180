package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JUST9N1/Security-Backend/internal/adapters/http/handlers"
	"github.com/JUST9N1/Security-Backend/internal/adapters/http/middleware"
	"github.com/JUST9N1/Security-Backend/internal/adapters/http/routes"
	"github.com/JUST9N1/Security-Backend/internal/adapters/payment"
	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/models"
	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/adapters/session"
	"github.com/JUST9N1/Security-Backend/internal/adapters/sms"
	"github.com/JUST9N1/Security-Backend/internal/config"
	"github.com/JUST9N1/Security-Backend/internal/core/lockout"
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/jwt"
	"github.com/JUST9N1/Security-Backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// @title Security Backend API
// @version 1.0
// @description Healthcare booking API for patients, workers and admins with progressive login lockout.

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Info("✅ Database migration completed")

	// Connect to redis (session store)
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Collaborators
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := password.NewHasher(cfg.BcryptCost)
	smsSender := sms.NewSender(cfg.SMS.URL, cfg.SMS.APIKey, cfg.SMS.Timeout)
	stripe := payment.NewStripeProvider(cfg.Payment.StripeBaseURL, cfg.Payment.StripeSecretKey, cfg.Payment.Timeout)
	sessions := session.NewStore(rdb, cfg.Redis.SessionPrefix, cfg.Redis.SessionTTL)

	// Services
	authService := services.NewAuthService(accountRepo, hasher, tokens, smsSender, lockout.Default())
	accountService := services.NewAccountService(accountRepo, hasher)
	bookingService := services.NewBookingService(accountRepo, bookingRepo, stripe, cfg.ClientSiteURL, cfg.Payment.Currency)
	reviewService := services.NewReviewService(accountRepo, reviewRepo)

	if err := config.NewSeeder(authService, cfg.Seed).Run(context.Background()); err != nil {
		log.Warnf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start maintenance jobs (OTP purge)
	maintenance := services.NewMaintenanceService(accountRepo, cfg.Maintenance.Schedule)
	if err := maintenance.Start(); err != nil {
		log.Fatalf("❌ Failed to start maintenance jobs: %v", err)
	}
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Security Backend API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, &routes.Dependencies{
		Tokens:   tokens,
		Accounts: accountRepo,
		Sessions: sessions,
		Health: handlers.NewHealthHandler(cfg.AppMode,
			handlers.PingFunc(func(context.Context) error { return config.HealthCheck(db) }),
			handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		),
		Auth:    handlers.NewAuthHandler(authService),
		Account: handlers.NewAccountHandler(accountService, bookingService, reviewService),
		Booking: handlers.NewBookingHandler(bookingService),
		Review:  handlers.NewReviewHandler(reviewService),
		Session: handlers.NewSessionHandler(authService, accountService, sessions, cfg.Cookie),
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Infof("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("❌ Error during shutdown: %v", err)
	}
	log.Info("✅ Server stopped gracefully")
}
