package courts

import (
	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCourtRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Facility-scoped court routes
	facilities := rg.Group("/facilities")
	{
		facilities.GET("/:id/courts", controller.ListByFacility)
		facilities.GET("/:id/availability", controller.GetFacilityAvailability)

		admin := facilities.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			admin.POST("/:id/courts", controller.CreateCourt)
		}
	}

	courts := rg.Group("/courts")
	{
		courts.GET("/:id", controller.GetCourt)

		// Slot listing honors the caller's tier when a token is present;
		// anonymous callers see the basic horizon.
		courts.GET("/:id/slots", middleware.OptionalAuthWithConfig(cfg), controller.GetSlots)

		admin := courts.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			admin.PATCH("/:id/pricing", controller.UpdatePricing)
		}
	}
}
