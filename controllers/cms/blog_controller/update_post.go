package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdatePost godoc
// @Summary Update a blog post
// @Tags Admin - Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body models.UpdateBlogPostRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.BlogPost}
// @Router /admin/blog/{id} [patch]
func UpdatePost(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateBlogPostRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	post, err := services.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog.update", "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Post updated successfully", post))
}

// DeletePost godoc
// @Summary Delete a blog post
// @Tags Admin - Blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.ApiResponse
// @Router /admin/blog/{id} [delete]
func DeletePost(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := services.DeletePost(ctx, id)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog.delete", "Failed to delete post")
		return
	}

	// Cover uploads live under a per-post folder
	if media := services.GetMedia(); media != nil {
		if err := media.DeleteFolder(ctx, services.BlogMediaFolder+"/"+id.String()); err != nil {
			config.Log.Warn("[admin.blog.delete] failed to remove cover images", "post_id", id.String(), "error", err)
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Post deleted", post))
}
