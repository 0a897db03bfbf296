package refunds

import (
	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRefundRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		bookings.POST("/:id/cancel", controller.CancelBooking)
		bookings.POST("/:id/leave", controller.LeaveBooking)
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuthWithConfig(cfg))
	{
		users.GET("/refunds", controller.ListUserRefunds)
	}
}
