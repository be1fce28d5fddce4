package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetPostBySlug godoc
// @Summary Get a published blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.ApiResponse{data=models.BlogPost}
// @Failure 404 {object} models.ApiResponse "Post not found"
// @Router /blog/{slug} [get]
func GetPostBySlug(c *gin.Context) {
	post, err := services.GetPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, err, "blog.get", "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Post retrieved successfully", post))
}
