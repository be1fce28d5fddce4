package user_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetUsers godoc
// @Summary List users
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name, email or phone"
// @Param role query string false "customer|admin"
// @Param status query string false "active|banned"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.UserResponse,meta=models.Pagination}
// @Router /admin/users [get]
func GetUsers(c *gin.Context) {
	var f services.UserFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	users, total, page, limit, err := services.ListUsers(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.users", "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Users retrieved successfully", users,
		models.NewPagination(page, limit, total)))
}
