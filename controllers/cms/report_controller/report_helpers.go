package report_controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

const reportTimeout = 30 * time.Second

func parseRange(c *gin.Context) (models.ReportRange, bool) {
	r, err := services.ParseReportRange(c.Query("from"), c.Query("to"), time.Now())
	if err != nil {
		helpers.RespondError(c, err, "admin.reports", "Invalid report range")
		return models.ReportRange{}, false
	}
	return r, true
}
