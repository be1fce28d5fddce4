package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CreateCategory godoc
// @Summary Create a category
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse "Invalid request or unknown parent"
// @Failure 409 {object} models.ApiResponse "Slug already used"
// @Router /admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	category, err := services.CreateCategory(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "admin.category.create", "Failed to create category")
		return
	}
	helpers.SetActivityResource(c, category.ID)

	config.Log.Info("[admin.category.create] category created", "category_id", category.ID.String(), "slug", category.Slug)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created successfully", category))
}
