package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// DeleteCategory godoc
// @Summary Delete category
// @Description Refused with 409 while items or sub-categories reference it.
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Category not found"
// @Failure 409 {object} models.ApiResponse "Category in use"
// @Router /admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := services.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.category.delete", "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", category))
}
