package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/item_controller"
)

func SetupItemRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		// Read
		items.GET("", item_controller.GetItems)
		items.GET("/:id", item_controller.GetItemByID)

		// Write
		items.POST("", item_controller.CreateItem)
		items.PATCH("/:id", item_controller.UpdateItem)
		items.DELETE("/:id", item_controller.DeleteItem)

		// Media and stock
		items.POST("/:id/images", item_controller.UploadItemImage)
		items.PATCH("/:id/stock", item_controller.UpdateItemStock)
	}
}
