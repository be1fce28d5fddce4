package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CreatePost godoc
// @Summary Create a blog post
// @Description The slug is derived from the title when omitted and suffixed on collision. Publishing stamps published_at.
// @Tags Admin - Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BlogPostRequest true "Post"
// @Success 201 {object} models.ApiResponse{data=models.BlogPost}
// @Router /admin/blog [post]
func CreatePost(c *gin.Context) {
	adminID, ok := helpers.AdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	var req models.BlogPostRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	author, err := services.GetUser(ctx, adminID)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog.create", "Failed to load author")
		return
	}

	post, err := services.CreatePost(ctx, author, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog.create", "Failed to create post")
		return
	}
	helpers.SetActivityResource(c, post.ID)

	config.Log.Info("[admin.blog.create] post created", "post_id", post.ID.String(), "slug", post.Slug, "status", post.Status)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Post created successfully", post))
}
