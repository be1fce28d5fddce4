package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/settings_controller"
)

func SetupSettingsRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("/shipping", settings_controller.GetShippingSettings)
		settings.PATCH("/shipping", settings_controller.UpdateShippingSettings)
	}
}
