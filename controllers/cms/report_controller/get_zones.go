package report_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetZones godoc
// @Summary Sales per delivery zone
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD), inclusive"
// @Success 200 {object} models.ApiResponse{data=[]models.ZoneReport}
// @Router /admin/reports/zones [get]
func GetZones(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithCustomTimeout(reportTimeout)
	defer cancel()

	zones, err := services.SalesByZone(ctx, r)
	if err != nil {
		helpers.RespondError(c, err, "admin.reports.zones", "Failed to build zone report")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zone report retrieved successfully", zones))
}
