package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/review_controller"
)

func SetupReviewRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("", review_controller.GetReviews)
		reviews.PATCH("/:id/status", review_controller.UpdateReviewStatus)
		reviews.DELETE("/:id", review_controller.DeleteReview)
	}
}
