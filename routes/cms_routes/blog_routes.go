package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/blog_controller"
)

func SetupBlogRoutes(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	{
		blog.GET("", blog_controller.GetPosts)
		blog.GET("/:id", blog_controller.GetPostByID)
		blog.POST("", blog_controller.CreatePost)
		blog.PATCH("/:id", blog_controller.UpdatePost)
		blog.DELETE("/:id", blog_controller.DeletePost)
		blog.POST("/:id/cover", blog_controller.UploadPostCover)
	}
}
