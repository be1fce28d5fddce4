package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/user_controller"
)

func SetupUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", user_controller.GetUsers)
		users.GET("/:id", user_controller.GetUserDetails)
		users.GET("/:id/orders", user_controller.GetUserOrders)
		users.PATCH("/:id", user_controller.UpdateUser)
	}
}
