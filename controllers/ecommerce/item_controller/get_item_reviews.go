package item_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetItemReviews godoc
// @Summary List approved reviews of an item
// @Tags Storefront - Reviews
// @Produce json
// @Param slug path string true "Item slug or id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Reviews per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.ReviewDTO}
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /store/items/{slug}/reviews [get]
func GetItemReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, total, page, limit, err := services.ListItemReviews(c.Request.Context(), c.Param("slug"), page, limit)
	if err != nil {
		helpers.RespondError(c, err, "store.reviews", "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Reviews retrieved successfully", reviews,
		models.NewPagination(page, limit, total)))
}
