package ecommerce_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/user_controller/order_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/user_controller/profile_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

func SetupUserRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		// Profile
		user.GET("/me", profile_controller.GetMe)
		user.PATCH("", profile_controller.UpdateProfile)
		user.POST("/password", profile_controller.ChangePassword)

		// Orders
		orders := user.Group("/orders")
		{
			orders.GET("", order_controller.GetOrders)
			orders.GET("/:id", order_controller.GetOrderDetails)
			orders.POST("/:id/cancel", order_controller.CancelOrder)
			orders.GET("/:id/invoice", order_controller.DownloadInvoice)
		}
	}
}
