package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lexlink/consultation-api/internal/api/handler"
	"github.com/lexlink/consultation-api/internal/api/middleware"
	"github.com/lexlink/consultation-api/internal/core/service"
	mongodb "github.com/lexlink/consultation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lexlink/consultation-api/internal/infrastructure/db/redis"
	"github.com/lexlink/consultation-api/internal/infrastructure/http/handlers"
	"github.com/lexlink/consultation-api/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit dispatcher is returned alongside so main can start and stop its
// workers with the server lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, auditWorkers int, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("consultation"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	lawyerRepo := mongodb.NewLawyerRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	accountRepo := mongodb.NewAccountRepository(db)

	// --- Infrastructure ---
	slotGuard := redisdb.NewSlotGuard(rdb)
	dispatcher := queue.NewDispatcher(auditWorkers, auditRepo, log)

	// --- Services ---
	identityService := service.NewIdentityService(userRepo, dispatcher, log)
	directoryService := service.NewDirectoryService(lawyerRepo, userRepo, dispatcher, log)
	bookingService := service.NewBookingService(bookingRepo, lawyerRepo, userRepo, slotGuard, dispatcher, log)
	reviewService := service.NewReviewService(lawyerRepo, bookingRepo, userRepo, log)
	dashboardService := service.NewDashboardService(bookingRepo, lawyerRepo, userRepo, log)
	accountService := service.NewAccountService(accountRepo, jwtSecret, 24*time.Hour)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(accountService)
	identityHandler := handler.NewIdentityHandler(identityService)
	lawyerHandler := handler.NewLawyerHandler(directoryService, reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(identityService, bookingService, directoryService)

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Identity provider routes (no auth) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public directory ---
	e.GET("/v1/lawyers", lawyerHandler.List)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/onboarding", identityHandler.CompleteOnboarding)
	v1.GET("/profile", identityHandler.GetProfile)
	v1.PUT("/profile", identityHandler.SaveProfile)
	v1.GET("/profile/:identity", identityHandler.GetProfileFor)
	v1.GET("/role", identityHandler.GetRole)

	v1.POST("/lawyers", lawyerHandler.Create)
	v1.PUT("/lawyers/:lawyer_id", lawyerHandler.Update)
	v1.POST("/lawyers/:lawyer_id/reviews", lawyerHandler.AddReview)

	v1.POST("/bookings", bookingHandler.Book)
	v1.PATCH("/bookings/:booking_id/status", bookingHandler.UpdateStatus)

	v1.GET("/dashboard/client", dashboardHandler.Client)
	v1.GET("/dashboard/lawyer/:lawyer_id", dashboardHandler.Lawyer)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMiddleware, middleware.AdminOnly(identityService))
	admin.PUT("/users/:identity/role", adminHandler.AssignRole)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/bookings", adminHandler.ListBookings)
	admin.DELETE("/bookings/:booking_id", adminHandler.DeleteBooking)
	admin.DELETE("/lawyers/:lawyer_id", adminHandler.DeleteLawyer)

	// --- Health probes and observability (no auth required) ---
	probes := handlers.NewProbes(db, rdb)
	e.GET("/health", probes.Liveness)
	e.GET("/health/ready", probes.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
