package review_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateReviewStatus godoc
// @Summary Moderate a review
// @Description Approving or rejecting recomputes the item's rating.
// @Tags Admin - Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body models.UpdateReviewStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse{data=models.Review}
// @Router /admin/reviews/{id}/status [patch]
func UpdateReviewStatus(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateReviewStatusRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	review, err := services.SetReviewStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		helpers.RespondError(c, err, "admin.review.status", "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Review "+review.Status, review))
}
