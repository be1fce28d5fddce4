package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/category_controller"
)

func SetupCategoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/categories")
	{
		category.GET("", category_controller.GetCategories)
		category.POST("", category_controller.CreateCategory)
		category.PATCH("/:id", category_controller.UpdateCategory)
		category.DELETE("/:id", category_controller.DeleteCategory)
	}
}
