package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UploadPostCover godoc
// @Summary Upload a blog cover image
// @Tags Admin - Blog
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param image formData file true "Cover image"
// @Success 200 {object} models.ApiResponse{data=models.BlogPost}
// @Router /admin/blog/{id}/cover [post]
func UploadPostCover(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := services.GetPost(ctx, id); err != nil {
		helpers.RespondError(c, err, "admin.blog.cover", "Failed to fetch post")
		return
	}

	uploaded, ok := helpers.UploadFormImage(c, "image", services.BlogMediaFolder+"/"+id.String())
	if !ok {
		return
	}

	post, err := services.SetPostCover(ctx, id, uploaded.URL)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog.cover", "Failed to save cover")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cover uploaded successfully", post))
}
