package facilities

import (
	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFacilityRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	facilities := rg.Group("/facilities")
	{
		facilities.GET("", controller.ListFacilities)
		facilities.GET("/:id", controller.GetFacility)

		admin := facilities.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateFacility)
		}
	}
}
