package report_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOverview godoc
// @Summary Dashboard overview
// @Description Revenue, orders, AOV, new customers and abandoned-cart recovery rate. The range defaults to the last 30 days and is capped at 366.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD), inclusive"
// @Success 200 {object} models.ApiResponse{data=models.OverviewReport}
// @Failure 400 {object} models.ApiResponse "Invalid range"
// @Router /admin/reports/overview [get]
func GetOverview(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithCustomTimeout(reportTimeout)
	defer cancel()

	report, err := services.OverviewReport(ctx, r)
	if err != nil {
		helpers.RespondError(c, err, "admin.reports.overview", "Failed to build overview")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Overview retrieved successfully", report))
}
