package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCategories godoc
// @Summary Get all categories
// @Description Category tree including inactive categories, with item counts rolled up to parents.
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Param status query string false "active|inactive"
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryNode}
// @Router /admin/categories [get]
func GetCategories(c *gin.Context) {
	tree, err := services.ListCategories(c.Request.Context(), c.Query("status"))
	if err != nil {
		helpers.RespondError(c, err, "admin.categories", "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories retrieved successfully", tree))
}
