package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/registration_controller"
)

func SetupRegistrationRoutes(rg *gin.RouterGroup) {
	registrations := rg.Group("/registrations")
	{
		registrations.GET("", registration_controller.GetRegistrations)
		registrations.GET("/export", registration_controller.ExportRegistrations)
		registrations.PATCH("/:id/status", registration_controller.UpdateRegistrationStatus)
	}
}
