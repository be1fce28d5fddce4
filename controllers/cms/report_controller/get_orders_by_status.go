package report_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOrdersByStatus godoc
// @Summary Orders per status
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD), inclusive"
// @Success 200 {object} models.ApiResponse{data=[]models.StatusCount}
// @Router /admin/reports/orders-by-status [get]
func GetOrdersByStatus(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithCustomTimeout(reportTimeout)
	defer cancel()

	counts, err := services.OrdersByStatus(ctx, r)
	if err != nil {
		helpers.RespondError(c, err, "admin.reports.status", "Failed to build status report")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders by status retrieved successfully", counts))
}
