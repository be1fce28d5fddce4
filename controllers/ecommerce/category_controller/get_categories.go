package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCategories godoc
// @Summary Get storefront categories
// @Description Active category tree; item counts include sub-categories.
// @Tags Storefront - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryNode}
// @Failure 500 {object} models.ApiResponse
// @Router /store/categories [get]
func GetCategories(c *gin.Context) {
	tree, err := services.CategoryTree(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, err, "store.categories", "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories retrieved successfully", tree))
}
