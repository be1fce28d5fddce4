package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateCategory godoc
// @Summary Update category
// @Description Update name, slug, parent, status or sort order. A category cannot become its own ancestor.
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body models.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 404 {object} models.ApiResponse "Category not found"
// @Router /admin/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	// Step 1: Parse category ID
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	// Step 2: Bind request body
	var req models.UpdateCategoryRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	// Step 3: Update
	category, err := services.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.category.update", "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category updated successfully", category))
}
