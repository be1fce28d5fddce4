package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CreateItemReview godoc
// @Summary Review an item
// @Description One review per user and item. Reviews start pending and show up once approved.
// @Tags Storefront - Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Item slug or id"
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.ApiResponse{data=models.Review}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Failure 409 {object} models.ApiResponse "Already reviewed"
// @Router /store/items/{slug}/reviews [post]
func CreateItemReview(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.CreateReviewRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := services.GetUser(ctx, userID)
	if err != nil {
		helpers.RespondError(c, err, "store.review", "Failed to load user")
		return
	}

	review, err := services.CreateReview(ctx, user, c.Param("slug"), req)
	if err != nil {
		helpers.RespondError(c, err, "store.review", "Failed to create review")
		return
	}

	config.Log.Info("[store.review] review submitted", "review_id", review.ID.String(), "item_id", review.ItemID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Review submitted for moderation", review))
}
