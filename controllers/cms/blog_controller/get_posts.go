package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetPosts godoc
// @Summary List blog posts
// @Description Drafts and published posts, newest first.
// @Tags Admin - Blog
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft|published"
// @Param tag query string false "Tag"
// @Param q query string false "Title contains"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.BlogPost,meta=models.Pagination}
// @Router /admin/blog [get]
func GetPosts(c *gin.Context) {
	var f services.PostFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	posts, total, page, limit, err := services.ListPosts(c.Request.Context(), f, false)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog", "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Posts retrieved successfully", posts,
		models.NewPagination(page, limit, total)))
}

// GetPostByID godoc
// @Summary Get a blog post
// @Tags Admin - Blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.ApiResponse{data=models.BlogPost}
// @Router /admin/blog/{id} [get]
func GetPostByID(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := services.GetPost(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.blog", "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Post retrieved successfully", post))
}
