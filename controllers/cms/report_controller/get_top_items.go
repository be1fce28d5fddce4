package report_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetTopItems godoc
// @Summary Best selling items
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD), inclusive"
// @Param limit query int false "Number of items (max 50)" default(10)
// @Success 200 {object} models.ApiResponse{data=[]models.TopItem}
// @Router /admin/reports/top-items [get]
func GetTopItems(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := config.WithCustomTimeout(reportTimeout)
	defer cancel()

	items, err := services.TopItems(ctx, r, limit)
	if err != nil {
		helpers.RespondError(c, err, "admin.reports.top_items", "Failed to build top items report")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Top items retrieved successfully", items))
}
