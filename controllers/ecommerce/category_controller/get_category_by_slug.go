package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCategoryBySlug godoc
// @Summary Get a storefront category
// @Tags Storefront - Categories
// @Produce json
// @Param slug path string true "Category slug or id"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 404 {object} models.ApiResponse "Category not found"
// @Router /store/categories/{slug} [get]
func GetCategoryBySlug(c *gin.Context) {
	category, err := services.FindCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, err, "store.category", "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category retrieved successfully", category))
}
