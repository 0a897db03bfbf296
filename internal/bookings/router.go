package bookings

import (
	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	courts := rg.Group("/courts")
	courts.Use(middleware.JWTAuthWithConfig(cfg))
	{
		courts.POST("/:id/bookings", controller.CreateBooking)
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("/public", controller.ListPublicBookings)

		authed := bookings.Group("")
		authed.Use(middleware.JWTAuthWithConfig(cfg))
		{
			authed.GET("/:id", controller.GetBooking)
			authed.POST("/:id/join", controller.JoinBooking)
		}
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuthWithConfig(cfg))
	{
		users.GET("/bookings", controller.ListUserBookings)
	}
}
