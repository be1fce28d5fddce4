package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/cart_controller"
)

func SetupCartRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts")
	{
		carts.GET("", cart_controller.GetAbandonedCarts)
		carts.GET("/stats", cart_controller.GetCartStats)
		carts.GET("/stream", cart_controller.CartsStream)
		carts.GET("/:id", cart_controller.GetAbandonedCart)
		carts.POST("/:id/remind", cart_controller.RemindCart)
		carts.DELETE("/:id", cart_controller.DeleteCart)
	}
}
