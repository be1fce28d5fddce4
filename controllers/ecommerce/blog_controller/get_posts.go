package blog_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetPosts godoc
// @Summary List published blog posts
// @Tags Blog
// @Produce json
// @Param tag query string false "Tag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Posts per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.BlogPost,meta=models.Pagination}
// @Router /blog [get]
func GetPosts(c *gin.Context) {
	var f services.PostFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	posts, total, page, limit, err := services.ListPosts(c.Request.Context(), f, true)
	if err != nil {
		helpers.RespondError(c, err, "blog.list", "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Posts retrieved successfully", posts,
		models.NewPagination(page, limit, total)))
}
