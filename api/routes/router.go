// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"courtside/internal/activity"
	"courtside/internal/bookings"
	"courtside/internal/courts"
	"courtside/internal/facilities"
	"courtside/internal/notifications"
	"courtside/internal/payments"
	"courtside/internal/refunds"
	"courtside/internal/shared/config"
	"courtside/internal/shared/database"
	"courtside/pkg/cache"
	"courtside/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	log        *logger.Logger
	dispatcher *activity.Dispatcher
	producer   notifications.Producer

	// services shared across route groups and with background jobs
	courtService   courts.Service
	bookingService bookings.Service
	notifier       *notifications.BookingNotifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, dispatcher *activity.Dispatcher, producer notifications.Producer) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		log:        log,
		dispatcher: dispatcher,
		producer:   producer,
	}
}

// BookingService exposes the wired booking service for background jobs.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Booking routes first: the court availability resolver reads the
		// booking repository through an adapter built here.
		r.setupBookingCore(api)
		r.setupFacilityRoutes(api)
		r.setupRefundRoutes(api)
		r.setupPaymentRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "courtside-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "courtside-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupBookingCore wires the court and booking services together and
// registers both route groups.
func (r *Router) setupBookingCore(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	courtRepo := courts.NewRepository(r.db.GetPostgreSQL())

	r.courtService = courts.NewService(courtRepo, bookingSourceAdapter{repo: bookingRepo})

	r.notifier = notifications.NewBookingNotifier(r.producer, r.log)
	r.bookingService = bookings.NewService(
		bookingRepo,
		courtDirectoryAdapter{courts: r.courtService},
		r.dispatcher,
		r.notifier,
		r.log,
		r.config.Booking.GraceMinutes,
	)

	courtController := courts.NewController(r.courtService, r.config)
	courts.SetupCourtRoutes(rg, courtController, r.config)

	bookingController := bookings.NewController(r.bookingService, r.config)
	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

// setupFacilityRoutes configures facility management routes
func (r *Router) setupFacilityRoutes(rg *gin.RouterGroup) {
	facilityRepo := facilities.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	facilityService := facilities.NewService(facilityRepo, cacheService, r.config.Redis.CacheTTL)
	facilityController := facilities.NewController(facilityService)

	facilities.SetupFacilityRoutes(rg, facilityController, r.config)
}

// setupRefundRoutes configures cancellation and refund routes
func (r *Router) setupRefundRoutes(rg *gin.RouterGroup) {
	refundRepo := refunds.NewRepository(r.db.GetPostgreSQL())
	refundService := refunds.NewService(refundRepo, r.bookingService, r.notifier, r.log)
	refundController := refunds.NewController(refundService)

	refunds.SetupRefundRoutes(rg, refundController, r.config)
}

// setupPaymentRoutes configures payment verification routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	gateway := payments.NewPaystackGateway(r.config.Payment.BaseURL, r.config.Payment.SecretKey)
	paymentService := payments.NewService(gateway, r.bookingService, r.log)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController, r.config)
}
