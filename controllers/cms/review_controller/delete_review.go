package review_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// DeleteReview godoc
// @Summary Delete a review
// @Tags Admin - Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.ApiResponse
// @Router /admin/reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := services.DeleteReview(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.review.delete", "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Review deleted", review))
}
