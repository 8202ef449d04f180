package routes

import (
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/http/handlers"
	"github.com/JUST9N1/Security-Backend/internal/adapters/http/middleware"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	// workerListMaxAge is how long clients may cache the public worker list
	workerListMaxAge = time.Minute
	// privateMaxAge forces revalidation of account data
	privateMaxAge = 0
)

// Dependencies is everything the router needs, built once in main
type Dependencies struct {
	Tokens   middleware.TokenVerifier
	Accounts middleware.AccountFinder
	Sessions middleware.SessionFinder

	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Account *handlers.AccountHandler
	Booking *handlers.BookingHandler
	Review  *handlers.ReviewHandler
	Session *handlers.SessionHandler
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Dependencies) {
	// Health check & root routes
	app.Get("/", deps.Health.Root)
	app.Get("/health", deps.Health.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	authenticate := middleware.Authenticate(deps.Tokens)
	restrict := func(roles ...domain.Role) fiber.Handler {
		return middleware.Restrict(deps.Accounts, roles...)
	}

	setupAuthRoutes(api.Group("/auth", middleware.NoCacheHeaders()), deps.Auth)
	setupSessionRoutes(api.Group("/session", middleware.NoCacheHeaders()), deps)
	setupPatientRoutes(api.Group("/users", middleware.PrivateCacheHeaders(privateMaxAge)), deps.Account, authenticate, restrict)
	setupWorkerRoutes(api.Group("/workers"), deps.Account, deps.Review, authenticate, restrict)
	setupReviewRoutes(api.Group("/reviews"), deps.Review, authenticate, restrict)
	setupBookingRoutes(api.Group("/bookings", middleware.PrivateCacheHeaders(privateMaxAge)), deps.Booking, authenticate)
	setupAdminRoutes(api.Group("/admin", middleware.PrivateCacheHeaders(privateMaxAge)), deps.Account, authenticate, restrict)
}

// setupAuthRoutes configures authentication routes (public)
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/get-token", middleware.AuthRateLimiter(), handler.GetToken)

	// OTP routes (3 req/min/IP)
	router.Post("/forgot_password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset_password", middleware.StrictRateLimiter(), handler.ResetPassword)
}

// setupSessionRoutes configures cookie session routes
func setupSessionRoutes(router fiber.Router, deps *Dependencies) {
	requireSession := middleware.RequireSession(deps.Sessions)

	router.Post("/", middleware.AuthRateLimiter(), deps.Session.Login)
	router.Delete("/", deps.Session.Logout)
	router.Get("/me", requireSession, deps.Session.Me)
	router.Delete("/all", requireSession, deps.Session.LogoutAll)
}

// setupPatientRoutes configures patient routes
func setupPatientRoutes(
	router fiber.Router,
	handler *handlers.AccountHandler,
	authenticate fiber.Handler,
	restrict func(...domain.Role) fiber.Handler,
) {
	router.Use(authenticate)

	router.Get("/profile/me", restrict(domain.RolePatient), handler.PatientProfile)
	router.Get("/appointments/my-appointments", restrict(domain.RolePatient), handler.PatientAppointments)

	router.Get("/", restrict(domain.RoleAdmin), handler.ListPatients)
	router.Get("/:id", restrict(domain.RolePatient, domain.RoleAdmin), handler.GetPatient)
	router.Put("/:id", restrict(domain.RolePatient, domain.RoleAdmin), handler.UpdatePatient)
	router.Delete("/:id", restrict(domain.RolePatient, domain.RoleAdmin), handler.DeletePatient)
}

// setupWorkerRoutes configures worker routes
func setupWorkerRoutes(
	router fiber.Router,
	handler *handlers.AccountHandler,
	reviews *handlers.ReviewHandler,
	authenticate fiber.Handler,
	restrict func(...domain.Role) fiber.Handler,
) {
	// Nested reviews
	router.Get("/:workerId/reviews", reviews.List)
	router.Post("/:workerId/reviews", authenticate, restrict(domain.RolePatient), reviews.Create)

	// Protected
	router.Get("/profile/me", authenticate, restrict(domain.RoleWorker), middleware.PrivateCacheHeaders(privateMaxAge), handler.WorkerProfile)
	router.Patch("/approve-worker/:id", authenticate, restrict(domain.RoleAdmin), handler.ApproveWorker)
	router.Put("/:id", authenticate, restrict(domain.RoleWorker, domain.RoleAdmin), handler.UpdateWorker)
	router.Delete("/:id", authenticate, restrict(domain.RoleWorker, domain.RoleAdmin), handler.DeleteWorker)

	// Public
	router.Get("/", middleware.CacheControl(workerListMaxAge), handler.ListWorkers)
	router.Get("/:id", handler.GetWorker)
}

// setupReviewRoutes configures review routes
func setupReviewRoutes(
	router fiber.Router,
	handler *handlers.ReviewHandler,
	authenticate fiber.Handler,
	restrict func(...domain.Role) fiber.Handler,
) {
	router.Get("/", handler.List)
	router.Post("/", authenticate, restrict(domain.RolePatient), handler.Create)
}

// setupBookingRoutes configures booking routes (any authenticated account)
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler, authenticate fiber.Handler) {
	router.Use(authenticate)

	router.Post("/checkout-session/:workerId", handler.Checkout)
	router.Put("/complete/:bookingId", handler.Complete)
	router.Put("/cancel/:bookingId", handler.Cancel)
	router.Get("/my-appointments", handler.MyAppointments)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(
	router fiber.Router,
	handler *handlers.AccountHandler,
	authenticate fiber.Handler,
	restrict func(...domain.Role) fiber.Handler,
) {
	router.Use(authenticate, restrict(domain.RoleAdmin))

	router.Get("/profile/me", handler.AdminProfile)
	router.Put("/:id", handler.UpdateAdmin)
}
