package review_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetReviews godoc
// @Summary List reviews
// @Tags Admin - Reviews
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending|approved|rejected"
// @Param item_id query string false "Item ID"
// @Param rating query int false "Rating"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Review,meta=models.Pagination}
// @Router /admin/reviews [get]
func GetReviews(c *gin.Context) {
	var f services.ReviewFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	reviews, total, page, limit, err := services.ListReviews(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.reviews", "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Reviews retrieved successfully", reviews,
		models.NewPagination(page, limit, total)))
}
