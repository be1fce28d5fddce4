package report_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetSales godoc
// @Summary Daily sales
// @Description One row per day in the range, zero-filled.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD), inclusive"
// @Success 200 {object} models.ApiResponse{data=[]models.DailySales}
// @Router /admin/reports/sales [get]
func GetSales(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithCustomTimeout(reportTimeout)
	defer cancel()

	days, err := services.SalesByDay(ctx, r)
	if err != nil {
		helpers.RespondError(c, err, "admin.reports.sales", "Failed to build sales report")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sales retrieved successfully", days))
}
