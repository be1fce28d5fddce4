package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetActivityLogs godoc
// @Summary Get admin activity
// @Description Activity logs for all admins, newest first.
// @Tags Admin - Activity
// @Produce json
// @Security BearerAuth
// @Param admin query string false "Admin ID"
// @Param resource query string false "Resource type (item, order, coupon, ...)"
// @Param action query string false "Action (e.g. created_item, updated_order)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLogResponse,meta=models.Pagination}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /admin/activity-logs [get]
func GetActivityLogs(c *gin.Context) {
	var f models.ActivityLogFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	logs, total, page, limit, err := services.GetActivityLogService().List(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.activity", "Failed to fetch activity logs")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Activity logs retrieved", logs,
		models.NewPagination(page, limit, total)))
}
