package payments

import (
	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuthWithConfig(cfg))
	{
		payments.POST("/verify/:reference", controller.VerifyPayment)
	}
}
